package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_outbox"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/committer"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/query"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(client *spanner.Client) *OutboxRepo {
	return &OutboxRepo{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     m_outbox.NewModel(),
	}
}

var _ contracts.OutboxRepository = (*OutboxRepo)(nil)

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	// Wrap payload string as JSON for Spanner
	payload := spanner.NullJSON{Value: jsonString(event.Payload), Valid: event.Payload != ""}

	return r.model.InsertMut(&m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     payload,
		Status:      event.Status,
	})
}

// InsertMuts creates one mutation per event.
func (r *OutboxRepo) InsertMuts(events []*contracts.OutboxEvent) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, e := range events {
		muts = append(muts, r.InsertMut(e))
	}
	return muts
}

// ListPending returns the oldest pending events first.
func (r *OutboxRepo) ListPending(ctx context.Context, limit int) ([]*contracts.OutboxEvent, error) {
	stmt := query.From(m_outbox.TableName).
		Select(
			m_outbox.EventID,
			m_outbox.EventType,
			m_outbox.AggregateID,
			"TO_JSON_STRING("+m_outbox.Payload+")",
			m_outbox.Status,
			m_outbox.RetryCount,
			m_outbox.CreatedAt,
		).
		Where(query.Eq(m_outbox.Status, contracts.OutboxPending)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		Limit(int64(limit)).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*contracts.OutboxEvent
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate outbox events: %w", err)
		}

		var e contracts.OutboxEvent
		var payload spanner.NullString
		if err := row.Columns(&e.EventID, &e.EventType, &e.AggregateID, &payload, &e.Status, &e.RetryCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		e.Payload = payload.StringVal
		events = append(events, &e)
	}
	return events, nil
}

// MarkProcessed flags the event as delivered.
func (r *OutboxRepo) MarkProcessed(ctx context.Context, eventID string) error {
	plan := committer.NewPlan()
	plan.Add(r.model.UpdateMut(eventID, map[string]interface{}{
		m_outbox.Status:      contracts.OutboxCompleted,
		m_outbox.ProcessedAt: spanner.CommitTimestamp,
	}))
	return r.committer.Apply(ctx, plan)
}

// MarkFailed flags the event as undeliverable and records the reason.
func (r *OutboxRepo) MarkFailed(ctx context.Context, eventID, reason string) error {
	return r.committer.InTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_outbox.TableName, spanner.Key{eventID}, []string{m_outbox.RetryCount})
		if err != nil {
			return fmt.Errorf("failed to read outbox event: %w", err)
		}
		var retries int64
		if err := row.Column(0, &retries); err != nil {
			return fmt.Errorf("failed to parse retry count: %w", err)
		}

		plan := committer.NewPlan()
		plan.Add(r.model.UpdateMut(eventID, map[string]interface{}{
			m_outbox.Status:       contracts.OutboxFailed,
			m_outbox.RetryCount:   retries + 1,
			m_outbox.ErrorMessage: reason,
			m_outbox.ProcessedAt:  spanner.CommitTimestamp,
		}))
		return plan.BufferInto(txn)
	})
}

// Purge deletes completed and failed events older than their cutoffs.
func (r *OutboxRepo) Purge(ctx context.Context, completedBefore, failedBefore time.Time) (int64, error) {
	var deleted int64
	err := r.committer.InTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		plan := committer.NewPlan()
		for status, cutoff := range map[string]time.Time{
			contracts.OutboxCompleted: completedBefore,
			contracts.OutboxFailed:    failedBefore,
		} {
			stmt := query.From(m_outbox.TableName).
				Select(m_outbox.EventID).
				Where(query.Eq(m_outbox.Status, status)).
				Where(query.Lt(m_outbox.ProcessedAt, cutoff)).
				Build()

			err := txn.Query(ctx, stmt).Do(func(row *spanner.Row) error {
				var eventID string
				if err := row.Columns(&eventID); err != nil {
					return err
				}
				plan.Add(r.model.DeleteMut(eventID))
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to select %s events to purge: %w", status, err)
			}
		}
		deleted = int64(len(plan.Mutations()))
		return plan.BufferInto(txn)
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
