package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

// CouponRepo implements CouponRepository and UsageLedger for PostgreSQL.
type CouponRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewCouponRepo creates a new CouponRepo.
func NewCouponRepo(pool *pgxpool.Pool, logger *zap.Logger) *CouponRepo {
	return &CouponRepo{pool: pool, logger: logger}
}

var (
	_ contracts.CouponRepository = (*CouponRepo)(nil)
	_ contracts.UsageLedger      = (*CouponRepo)(nil)
)

const couponColumns = `
	coupon_id, code, discount_type, discount_value::text, min_order_amount::text,
	max_discount_amount::text, usage_limit, usage_count, valid_from, valid_until,
	is_active, applicable_category_ids, applicable_service_ids`

const (
	incrementUsageSQL = `
		UPDATE coupons SET usage_count = usage_count + 1, updated_at = now()
		WHERE coupon_id = $1 AND (usage_limit IS NULL OR usage_count < usage_limit)`
	decrementUsageSQL = `
		UPDATE coupons SET usage_count = usage_count - 1, updated_at = now()
		WHERE coupon_id = $1 AND usage_count > 0`
	countUsedBookingsSQL = `
		SELECT COUNT(*) FROM bookings WHERE coupon_id = $1 AND status = ANY($2)`
)

// Insert stores a new coupon.
func (r *CouponRepo) Insert(ctx context.Context, c *domain.Coupon) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO coupons (`+couponColumns+`, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7, $8, $9, $10, $11, $12, $13, now(), now())`,
		c.ID, c.Code, string(c.DiscountType), moneyArg(c.DiscountValue), moneyArg(c.MinOrderAmount),
		moneyArg(c.MaxDiscountAmount), c.UsageLimit, c.UsageCount, timeArg(c.ValidFrom), timeArg(c.ValidUntil),
		c.Active, c.ApplicableCategoryIDs, c.ApplicableServiceIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert coupon: %w", err)
	}
	return nil
}

// GetByCode looks the coupon up by its unique code.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("coupon", code, domain.ErrCouponNotFound)
	}
	return c, err
}

// GetByID retrieves a coupon by id.
func (r *CouponRepo) GetByID(ctx context.Context, couponID string) (*domain.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE coupon_id = $1`, couponID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("coupon", couponID, domain.ErrCouponNotFound)
	}
	return c, err
}

// ListIDs returns every coupon id in key order.
func (r *CouponRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT coupon_id FROM coupons ORDER BY coupon_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect coupon ids: %w", err)
	}
	return ids, nil
}

// IncrementUsage adds one use in its own transaction.
func (r *CouponRepo) IncrementUsage(ctx context.Context, couponID string) error {
	return withTransaction(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		return incrementUsageTx(ctx, tx, couponID)
	})
}

// DecrementUsage removes one use in its own transaction.
func (r *CouponRepo) DecrementUsage(ctx context.Context, couponID string) (contracts.LedgerResult, error) {
	var result contracts.LedgerResult
	err := withTransaction(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		var err error
		result, err = decrementUsageTx(ctx, tx, couponID)
		return err
	})
	if err != nil {
		return contracts.LedgerResult{}, err
	}
	return result, nil
}

// RecalculateUsageCount rebuilds usage_count from the bookings that count as used.
func (r *CouponRepo) RecalculateUsageCount(ctx context.Context, couponID string) (contracts.UsageRecount, error) {
	recount := contracts.UsageRecount{CouponID: couponID}
	err := withTransaction(ctx, r.pool, r.logger, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT usage_count FROM coupons WHERE coupon_id = $1 FOR UPDATE`, couponID).Scan(&recount.Previous)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewNotFoundError("coupon", couponID, domain.ErrCouponNotFound)
			}
			return fmt.Errorf("failed to read coupon: %w", err)
		}
		if err := tx.QueryRow(ctx, countUsedBookingsSQL, couponID, domain.CountedStatuses()).Scan(&recount.Current); err != nil {
			return fmt.Errorf("failed to count bookings: %w", err)
		}
		if !recount.Drifted() {
			return nil
		}
		_, err = tx.Exec(ctx, `UPDATE coupons SET usage_count = $2, updated_at = now() WHERE coupon_id = $1`, couponID, recount.Current)
		if err != nil {
			return fmt.Errorf("failed to overwrite usage count: %w", err)
		}
		return nil
	})
	if err != nil {
		return contracts.UsageRecount{}, err
	}
	return recount, nil
}

func incrementUsageTx(ctx context.Context, tx pgx.Tx, couponID string) error {
	tag, err := tx.Exec(ctx, incrementUsageSQL, couponID)
	if err != nil {
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if err := couponExistsTx(ctx, tx, couponID); err != nil {
		return err
	}
	return fmt.Errorf("%w: coupon %s", domain.ErrUsageLimitExceeded, couponID)
}

func decrementUsageTx(ctx context.Context, tx pgx.Tx, couponID string) (contracts.LedgerResult, error) {
	tag, err := tx.Exec(ctx, decrementUsageSQL, couponID)
	if err != nil {
		return contracts.LedgerResult{}, fmt.Errorf("failed to decrement coupon usage: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return contracts.LedgerResult{}, nil
	}
	if err := couponExistsTx(ctx, tx, couponID); err != nil {
		return contracts.LedgerResult{}, err
	}
	return contracts.LedgerResult{Clamped: true}, nil
}

func couponExistsTx(ctx context.Context, tx pgx.Tx, couponID string) error {
	var one int
	err := tx.QueryRow(ctx, `SELECT 1 FROM coupons WHERE coupon_id = $1`, couponID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("coupon", couponID, domain.ErrCouponNotFound)
		}
		return fmt.Errorf("failed to read coupon: %w", err)
	}
	return nil
}

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var (
		c                     domain.Coupon
		discountType, value   string
		minOrder, maxDiscount *string
	)
	err := row.Scan(
		&c.ID, &c.Code, &discountType, &value, &minOrder, &maxDiscount,
		&c.UsageLimit, &c.UsageCount, &c.ValidFrom, &c.ValidUntil,
		&c.Active, &c.ApplicableCategoryIDs, &c.ApplicableServiceIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan coupon: %w", err)
	}

	c.DiscountType = domain.DiscountType(discountType)
	if c.DiscountValue, err = parseMoney(value); err != nil {
		return nil, err
	}
	if c.MinOrderAmount, err = parseNullMoney(minOrder); err != nil {
		return nil, err
	}
	if c.MaxDiscountAmount, err = parseNullMoney(maxDiscount); err != nil {
		return nil, err
	}
	return &c, nil
}
