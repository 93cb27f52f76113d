package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

//go:generate mockgen -source=outbox_repo.go -destination=mocks/mock_outbox_repo.go -package=mocks

// Outbox event status values
const (
	OutboxPending   = "pending"
	OutboxCompleted = "completed"
	OutboxFailed    = "failed"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
	RetryCount  int64
	CreatedAt   time.Time
}

// EnrichEvents serializes domain events into pending outbox events.
func EnrichEvents(events []domain.DomainEvent, newID func() string) ([]*OutboxEvent, error) {
	out := make([]*OutboxEvent, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s event: %w", event.EventType(), err)
		}
		out = append(out, &OutboxEvent{
			EventID:     newID(),
			EventType:   event.EventType(),
			AggregateID: event.AggregateID(),
			Payload:     string(payload),
			Status:      OutboxPending,
		})
	}
	return out, nil
}

// OutboxRepository is used by the relay to drain and prune the outbox.
type OutboxRepository interface {
	ListPending(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkProcessed(ctx context.Context, eventID string) error
	MarkFailed(ctx context.Context, eventID, reason string) error
	// Purge deletes completed events processed before completedBefore and failed
	// events processed before failedBefore. It returns the number of deleted rows.
	Purge(ctx context.Context, completedBefore, failedBefore time.Time) (int64, error)
}
