// Package publisher turns the stored roster into a freshly published order list.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arnavshah/troop-swap-api-go/pkg/generator"
	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPublishInProgress is returned when another publish is still running
var ErrPublishInProgress = errors.New("a publish is already in progress")

// RosterProvider supplies the roster snapshot for a run
type RosterProvider interface {
	Roster(ctx context.Context) ([]models.PlayerEntry, error)
}

// OrderSink stores a complete order list, replacing the previous one atomically
type OrderSink interface {
	ReplaceOrders(ctx context.Context, runID string, players int, orders []models.Assignment) error
}

// Resetter wipes the roster and the published orders
type Resetter interface {
	Reset(ctx context.Context) error
}

// Publisher runs one generation at a time against the stored roster
type Publisher struct {
	roster RosterProvider
	sink   OrderSink
	cfg    generator.Config
	seed   func() int64
	logger *zap.Logger

	mu sync.Mutex
}

// Option customizes a Publisher
type Option func(*Publisher)

// WithSeed pins the shuffle seed of every run
func WithSeed(seed int64) Option {
	return func(p *Publisher) {
		p.seed = func() int64 { return seed }
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Publisher) {
		p.logger = l
	}
}

// New creates a Publisher
func New(roster RosterProvider, sink OrderSink, cfg generator.Config, opts ...Option) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Publisher{
		roster: roster,
		sink:   sink,
		cfg:    cfg,
		seed:   func() int64 { return time.Now().UnixNano() },
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish fetches the roster, generates orders and hands them to the sink.
// Nothing is written when the roster is rejected.
func (p *Publisher) Publish(ctx context.Context) (*models.GenerateResponse, error) {
	if !p.mu.TryLock() {
		return nil, ErrPublishInProgress
	}
	defer p.mu.Unlock()

	start := time.Now()
	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID))

	roster, err := p.roster.Roster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	gen, err := generator.New(p.cfg, generator.WithSeed(p.seed()))
	if err != nil {
		return nil, err
	}
	orders, err := gen.Generate(roster)
	if err != nil {
		log.Warn("Roster rejected", zap.Int("players", len(roster)), zap.Error(err))
		return nil, err
	}

	if err := p.sink.ReplaceOrders(ctx, runID, len(roster), orders); err != nil {
		return nil, fmt.Errorf("failed to store orders: %w", err)
	}

	summary := p.cfg.Summarize(roster, orders)
	log.Info("Orders published",
		zap.Int("players", summary.Players),
		zap.Int("sends", summary.Sends),
		zap.Int("unmatched", summary.Unmatched),
		zap.Float64("fairness", summary.FairnessScore),
		zap.Duration("took", time.Since(start)))

	return &models.GenerateResponse{
		RunID:   runID,
		Orders:  orders,
		Summary: summary,
	}, nil
}

// Reset wipes stored data through r under the publish lock, so a wipe and a
// publish never interleave.
func (p *Publisher) Reset(ctx context.Context, r Resetter) error {
	if !p.mu.TryLock() {
		return ErrPublishInProgress
	}
	defer p.mu.Unlock()

	if err := r.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	p.logger.Warn("Roster and orders wiped")
	return nil
}
