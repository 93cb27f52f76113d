package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_booking"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_coupon"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/committer"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/query"
)

// CouponRepo implements CouponRepository and UsageLedger for Spanner.
type CouponRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_coupon.Model
}

// NewCouponRepo creates a new CouponRepo.
func NewCouponRepo(client *spanner.Client) *CouponRepo {
	return &CouponRepo{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     m_coupon.NewModel(),
	}
}

var (
	_ contracts.CouponRepository = (*CouponRepo)(nil)
	_ contracts.UsageLedger      = (*CouponRepo)(nil)
)

// InsertMut creates a mutation for inserting a coupon.
func (r *CouponRepo) InsertMut(c *domain.Coupon) (*spanner.Mutation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return r.model.InsertMut(couponToData(c)), nil
}

// GetByCode looks the code up through the unique code index.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	row, err := r.client.Single().ReadRowUsingIndex(ctx, m_coupon.TableName, m_coupon.CodeIndex, spanner.Key{code}, []string{m_coupon.CouponID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NewNotFoundError("coupon", code, domain.ErrCouponNotFound)
		}
		return nil, fmt.Errorf("failed to look up coupon code: %w", err)
	}

	var couponID string
	if err := row.Column(0, &couponID); err != nil {
		return nil, fmt.Errorf("failed to parse coupon id: %w", err)
	}
	return r.GetByID(ctx, couponID)
}

// GetByID retrieves a coupon by id.
func (r *CouponRepo) GetByID(ctx context.Context, couponID string) (*domain.Coupon, error) {
	row, err := r.client.Single().ReadRow(ctx, m_coupon.TableName, spanner.Key{couponID}, m_coupon.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NewNotFoundError("coupon", couponID, domain.ErrCouponNotFound)
		}
		return nil, fmt.Errorf("failed to read coupon: %w", err)
	}

	var data m_coupon.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse coupon: %w", err)
	}
	return couponFromData(&data), nil
}

// ListIDs returns every coupon id in key order.
func (r *CouponRepo) ListIDs(ctx context.Context) ([]string, error) {
	stmt := query.From(m_coupon.TableName).
		Select(m_coupon.CouponID).
		OrderBy(m_coupon.CouponID, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var ids []string
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate coupons: %w", err)
		}
		var id string
		if err := row.Column(0, &id); err != nil {
			return nil, fmt.Errorf("failed to parse coupon id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// IncrementUsage adds one use in its own transaction.
func (r *CouponRepo) IncrementUsage(ctx context.Context, couponID string) error {
	return r.committer.InTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		return incrementUsageTx(ctx, txn, r.model, couponID)
	})
}

// DecrementUsage removes one use in its own transaction.
func (r *CouponRepo) DecrementUsage(ctx context.Context, couponID string) (contracts.LedgerResult, error) {
	var result contracts.LedgerResult
	err := r.committer.InTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		var err error
		result, err = decrementUsageTx(ctx, txn, r.model, couponID)
		return err
	})
	if err != nil {
		return contracts.LedgerResult{}, err
	}
	return result, nil
}

// RecalculateUsageCount rebuilds usage_count from the bookings that count as used.
func (r *CouponRepo) RecalculateUsageCount(ctx context.Context, couponID string) (contracts.UsageRecount, error) {
	var recount contracts.UsageRecount
	err := r.committer.InTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_coupon.TableName, spanner.Key{couponID}, []string{m_coupon.UsageCount})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.NewNotFoundError("coupon", couponID, domain.ErrCouponNotFound)
			}
			return fmt.Errorf("failed to read coupon: %w", err)
		}
		var previous int64
		if err := row.Column(0, &previous); err != nil {
			return fmt.Errorf("failed to parse usage count: %w", err)
		}

		stmt := query.From(m_booking.TableName).
			Where(query.Eq(m_booking.CouponID, couponID)).
			Where(query.In(m_booking.Status, domain.CountedStatuses())).
			Count().
			Build()

		current, err := countTx(ctx, txn, stmt)
		if err != nil {
			return fmt.Errorf("failed to count bookings: %w", err)
		}

		recount = contracts.UsageRecount{CouponID: couponID, Previous: previous, Current: current}
		if !recount.Drifted() {
			return nil
		}
		plan := committer.NewPlan()
		plan.Add(r.model.SetUsageMut(couponID, current))
		return plan.BufferInto(txn)
	})
	if err != nil {
		return contracts.UsageRecount{}, err
	}
	return recount, nil
}

func countTx(ctx context.Context, txn *spanner.ReadWriteTransaction, stmt spanner.Statement) (int64, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := row.Column(0, &count); err != nil {
		return 0, err
	}
	return count, nil
}
