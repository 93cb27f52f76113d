package validate_coupon

import (
	"context"
	"errors"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/validation"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/clock"
)

// Request asks whether a code would discount an order.
type Request struct {
	Code       string `json:"code" validate:"required"`
	ServiceID  string `json:"service_id" validate:"required"`
	BaseAmount string `json:"base_amount" validate:"required"`
}

// Result is the coupon verdict. Discount is zero unless Valid.
type Result struct {
	Valid    bool
	Discount *domain.Money
	Reason   domain.CouponReason
	Coupon   *domain.Coupon
}

// Query handles the validate coupon query.
type Query struct {
	catalog contracts.CatalogRepository
	coupons contracts.CouponRepository
	clock   clock.Clock
}

// NewQuery creates a new validate coupon query.
func NewQuery(catalog contracts.CatalogRepository, coupons contracts.CouponRepository, clock clock.Clock) *Query {
	return &Query{catalog: catalog, coupons: coupons, clock: clock}
}

// Execute evaluates the coupon against the service and amount without consuming it.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	base, err := domain.ParseMoney(req.BaseAmount)
	if err != nil || base.IsNegative() {
		return nil, domain.NewValidationError("base_amount", "must be a non-negative decimal amount")
	}

	coupon, err := q.coupons.GetByCode(ctx, req.Code)
	if errors.Is(err, domain.ErrCouponNotFound) {
		return &Result{Discount: domain.Zero(), Reason: domain.CouponNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	service, err := q.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	eval := coupon.Evaluate(base.Round2(), domain.CouponTarget{ServiceID: service.ID, CategoryID: service.CategoryID}, q.clock.Now())
	return &Result{
		Valid:    eval.Reason == domain.CouponOK,
		Discount: eval.Discount,
		Reason:   eval.Reason,
		Coupon:   coupon,
	}, nil
}
