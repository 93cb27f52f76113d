package contracts

import (
	"context"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

//go:generate mockgen -source=coupon_repo.go -destination=mocks/mock_coupon_repo.go -package=mocks

// CouponRepository reads coupons.
type CouponRepository interface {
	// GetByCode returns a NotFoundError wrapping domain.ErrCouponNotFound when no coupon has the code.
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	GetByID(ctx context.Context, couponID string) (*domain.Coupon, error)
	// ListIDs returns every coupon id, ordered.
	ListIDs(ctx context.Context) ([]string, error)
}

// LedgerResult reports the outcome of a usage change that did not fail.
type LedgerResult struct {
	// Clamped is set when a decrement found the count already at zero.
	Clamped bool
}

// UsageRecount is the result of rebuilding a usage count from bookings.
type UsageRecount struct {
	CouponID string `json:"coupon_id"`
	Previous int64  `json:"previous"`
	Current  int64  `json:"current"`
}

// Drifted reports whether the stored count disagreed with the bookings.
func (r UsageRecount) Drifted() bool {
	return r.Previous != r.Current
}

// UsageLedger maintains coupon usage counts. Each call runs in its own transaction.
type UsageLedger interface {
	// IncrementUsage returns domain.ErrUsageLimitExceeded when the coupon is exhausted.
	IncrementUsage(ctx context.Context, couponID string) error
	// DecrementUsage never drives the count below zero.
	DecrementUsage(ctx context.Context, couponID string) (LedgerResult, error)
	// RecalculateUsageCount overwrites the count with the number of bookings that count as used.
	RecalculateUsageCount(ctx context.Context, couponID string) (UsageRecount, error)
}
