package database

import (
	"context"
	"errors"

	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a roster entry does not exist
var ErrNotFound = errors.New("not found")

// RosterStore persists the alliance roster
type RosterStore struct {
	DB *gorm.DB
}

// Roster returns the roster snapshot in registration order
func (s *RosterStore) Roster(ctx context.Context) ([]models.PlayerEntry, error) {
	var records []RosterRecord
	if err := s.DB.WithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}

	entries := make([]models.PlayerEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, models.PlayerEntry{
			Username:  r.Username,
			Group:     models.Group(r.Status),
			SendCount: r.MarchesAvailable,
			Strength:  r.InfCav,
		})
	}
	return entries, nil
}

// Upsert stores e, replacing any previous entry with the same username.
// The replacement is appended so it moves to the end of the roster.
func (s *RosterStore) Upsert(ctx context.Context, e models.PlayerEntry) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", e.Username).Delete(&RosterRecord{}).Error; err != nil {
			return err
		}
		return tx.Create(&RosterRecord{
			Username:         e.Username,
			Status:           string(e.Group),
			MarchesAvailable: e.SendCount,
			InfCav:           e.Strength,
		}).Error
	})
}

// Remove deletes the entry for username
func (s *RosterStore) Remove(ctx context.Context, username string) error {
	res := s.DB.WithContext(ctx).Where("username = ?", username).Delete(&RosterRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset wipes the roster and the published orders together
func (s *RosterStore) Reset(ctx context.Context) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&RosterRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&OrderRecord{}).Error
	})
}
