package database

import (
	"context"
	"errors"
	"time"

	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"gorm.io/gorm"
)

// OrderStore persists the published order list
type OrderStore struct {
	DB *gorm.DB
}

// ReplaceOrders swaps the published orders for a new set in one transaction
// and records the run. Readers see either the old set or the new one.
func (s *OrderStore) ReplaceOrders(ctx context.Context, runID string, players int, orders []models.Assignment) error {
	unmatched := 0
	records := make([]OrderRecord, 0, len(orders))
	for i, o := range orders {
		if !o.Matched() {
			unmatched++
		}
		records = append(records, OrderRecord{
			RunID:        runID,
			Position:     i,
			From:         o.From,
			Status:       string(o.FromGroup),
			SendTo:       o.To,
			TargetStatus: o.ToGroup,
			Pass:         o.Pass,
		})
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&OrderRecord{}).Error; err != nil {
			return err
		}
		if len(records) > 0 {
			if err := tx.CreateInBatches(records, 200).Error; err != nil {
				return err
			}
		}
		return tx.Create(&PublishRun{
			RunID:       runID,
			Players:     players,
			Sends:       len(orders),
			Unmatched:   unmatched,
			PublishedAt: time.Now(),
		}).Error
	})
}

// Orders returns the published orders in the order they were written
func (s *OrderStore) Orders(ctx context.Context) ([]models.Assignment, error) {
	var records []OrderRecord
	if err := s.DB.WithContext(ctx).Order("position asc").Find(&records).Error; err != nil {
		return nil, err
	}

	orders := make([]models.Assignment, 0, len(records))
	for _, r := range records {
		orders = append(orders, models.Assignment{
			From:      r.From,
			FromGroup: models.Group(r.Status),
			To:        r.SendTo,
			ToGroup:   r.TargetStatus,
			Pass:      r.Pass,
		})
	}
	return orders, nil
}

// Runs returns the most recent publish runs, newest first
func (s *OrderStore) Runs(ctx context.Context, limit int) ([]PublishRun, error) {
	var runs []PublishRun
	err := s.DB.WithContext(ctx).Order("published_at desc").Order("id desc").Limit(limit).Find(&runs).Error
	return runs, err
}

// LatestRun returns the most recent publish run, or nil if none exists
func (s *OrderStore) LatestRun(ctx context.Context) (*PublishRun, error) {
	var run PublishRun
	err := s.DB.WithContext(ctx).Order("id desc").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
