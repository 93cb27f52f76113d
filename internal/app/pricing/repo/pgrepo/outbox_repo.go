package pgrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
)

// OutboxRepo implements OutboxRepository for PostgreSQL.
type OutboxRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(pool *pgxpool.Pool, logger *zap.Logger) contracts.OutboxRepository {
	return &OutboxRepo{pool: pool, logger: logger}
}

const insertOutboxSQL = `
	INSERT INTO outbox_events (event_id, event_type, aggregate_id, payload, status, retry_count, created_at)
	VALUES ($1, $2, $3, $4::jsonb, $5, 0, now())`

func queueOutboxInserts(batch *pgx.Batch, events []*contracts.OutboxEvent) {
	for _, e := range events {
		batch.Queue(insertOutboxSQL, e.EventID, e.EventType, e.AggregateID, e.Payload, e.Status)
	}
}

// ListPending returns the oldest pending events first.
func (r *OutboxRepo) ListPending(ctx context.Context, limit int) ([]*contracts.OutboxEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT event_id, event_type, aggregate_id, payload::text, status, retry_count, created_at
		FROM outbox_events
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2`, contracts.OutboxPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox events: %w", err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*contracts.OutboxEvent, error) {
		var e contracts.OutboxEvent
		err := row.Scan(&e.EventID, &e.EventType, &e.AggregateID, &e.Payload, &e.Status, &e.RetryCount, &e.CreatedAt)
		return &e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan outbox events: %w", err)
	}
	return events, nil
}

// MarkProcessed flags the event as delivered.
func (r *OutboxRepo) MarkProcessed(ctx context.Context, eventID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_events SET status = $2, processed_at = now() WHERE event_id = $1`,
		eventID, contracts.OutboxCompleted)
	if err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

// MarkFailed flags the event as undeliverable and records the reason.
func (r *OutboxRepo) MarkFailed(ctx context.Context, eventID, reason string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE outbox_events
		SET status = $2, retry_count = retry_count + 1, error_message = $3, processed_at = now()
		WHERE event_id = $1`,
		eventID, contracts.OutboxFailed, reason)
	if err != nil {
		return fmt.Errorf("failed to mark event failed: %w", err)
	}
	return nil
}

// Purge deletes completed and failed events older than their cutoffs.
func (r *OutboxRepo) Purge(ctx context.Context, completedBefore, failedBefore time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM outbox_events
		WHERE (status = $1 AND processed_at < $2)
		   OR (status = $3 AND processed_at < $4)`,
		contracts.OutboxCompleted, completedBefore, contracts.OutboxFailed, failedBefore)
	if err != nil {
		return 0, fmt.Errorf("failed to purge outbox: %w", err)
	}
	return tag.RowsAffected(), nil
}
