package relay_outbox

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/clock"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/publisher"
)

// Publisher delivers one message.
type Publisher interface {
	Publish(ctx context.Context, msg publisher.Message) error
}

// Config bounds a relay pass.
type Config struct {
	BatchSize          int
	CompletedRetention time.Duration
	FailedRetention    time.Duration
}

// Result counts what one pass did.
type Result struct {
	Published int
	Failed    int
	Purged    int64
}

// Interactor drains pending outbox events into a queue.
type Interactor struct {
	outbox    contracts.OutboxRepository
	publisher Publisher
	cfg       Config
	clock     clock.Clock
	logger    *zap.Logger
}

// NewInteractor creates a new relay interactor.
func NewInteractor(outbox contracts.OutboxRepository, pub Publisher, cfg Config, clock clock.Clock, logger *zap.Logger) *Interactor {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Interactor{
		outbox:    outbox,
		publisher: pub,
		cfg:       cfg,
		clock:     clock,
		logger:    logger,
	}
}

// Execute publishes one batch of pending events, then purges expired ones.
// A failed publish marks that event failed and the pass continues.
func (i *Interactor) Execute(ctx context.Context) (*Result, error) {
	events, err := i.outbox.ListPending(ctx, i.cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, e := range events {
		err := i.publisher.Publish(ctx, publisher.Message{
			ID:          e.EventID,
			Type:        e.EventType,
			AggregateID: e.AggregateID,
			Body:        e.Payload,
		})
		if err != nil {
			i.logger.Error("failed to publish outbox event",
				zap.String("event_id", e.EventID),
				zap.String("event_type", e.EventType),
				zap.Error(err),
			)
			if markErr := i.outbox.MarkFailed(ctx, e.EventID, err.Error()); markErr != nil {
				return res, fmt.Errorf("failed to mark event %s failed: %w", e.EventID, markErr)
			}
			res.Failed++
			continue
		}
		if err := i.outbox.MarkProcessed(ctx, e.EventID); err != nil {
			return res, fmt.Errorf("failed to mark event %s processed: %w", e.EventID, err)
		}
		res.Published++
	}

	if i.cfg.CompletedRetention > 0 && i.cfg.FailedRetention > 0 {
		now := i.clock.Now()
		purged, err := i.outbox.Purge(ctx, now.Add(-i.cfg.CompletedRetention), now.Add(-i.cfg.FailedRetention))
		if err != nil {
			return res, err
		}
		res.Purged = purged
	}

	if res.Published > 0 || res.Failed > 0 || res.Purged > 0 {
		i.logger.Info("outbox relay pass",
			zap.Int("published", res.Published),
			zap.Int("failed", res.Failed),
			zap.Int64("purged", res.Purged),
		)
	}
	return res, nil
}
