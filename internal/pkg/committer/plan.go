// Package committer applies batches of Spanner mutations atomically.
//
// Repositories build mutations instead of writing directly; callers collect them
// into a CommitPlan together with outbox events and apply the plan once:
//
//	plan := committer.NewPlan()
//	plan.AddMultiple(bookingMuts)
//	plan.AddMultiple(outboxMuts)
//	return c.Apply(ctx, plan)
//
// When a write depends on a read or a conditional DML statement, use
// InTransaction and buffer the plan inside the callback.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan collects mutations to be applied together.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{mutations: make([]*spanner.Mutation, 0)}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// BufferInto stages the plan on an open read-write transaction.
func (cp *CommitPlan) BufferInto(txn *spanner.ReadWriteTransaction) error {
	if cp.IsEmpty() {
		return nil
	}
	return txn.BufferWrite(cp.mutations)
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// InTransaction runs fn in a read-write transaction. Spanner may re-run fn when the
// transaction aborts, so fn must not keep side effects outside txn.
// Errors returned by fn are passed through unwrapped so callers can match sentinels.
func (c *Committer) InTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	var fnErr error
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		fnErr = fn(ctx, txn)
		return fnErr
	})
	if err != nil {
		if fnErr != nil {
			return fnErr
		}
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
