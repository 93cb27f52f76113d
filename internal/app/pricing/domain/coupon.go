package domain

import (
	"strings"
	"time"
)

// DiscountType is how a coupon's value is interpreted.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// CouponReason explains the outcome of evaluating a coupon.
type CouponReason string

const (
	CouponOK                CouponReason = "ok"
	CouponNotFound          CouponReason = "coupon_not_found"
	CouponInactive          CouponReason = "coupon_inactive"
	CouponNotStarted        CouponReason = "coupon_not_started"
	CouponExpired           CouponReason = "coupon_expired"
	CouponUsageLimitReached CouponReason = "usage_limit_reached"
	CouponMinOrderNotMet    CouponReason = "min_order_not_met"
	CouponNotApplicable     CouponReason = "not_applicable"
)

// Coupon is a discount code. A nil optional field means "no restriction".
type Coupon struct {
	ID                    string
	Code                  string
	DiscountType          DiscountType
	DiscountValue         *Money
	MinOrderAmount        *Money
	MaxDiscountAmount     *Money
	UsageLimit            *int64
	UsageCount            int64
	ValidFrom             *time.Time
	ValidUntil            *time.Time
	Active                bool
	ApplicableCategoryIDs []string
	ApplicableServiceIDs  []string
}

// Validate checks the coupon's own invariants.
func (c *Coupon) Validate() error {
	if strings.TrimSpace(c.Code) == "" {
		return ErrEmptyCouponCode
	}
	if c.DiscountType != DiscountTypePercentage && c.DiscountType != DiscountTypeFixed {
		return ErrInvalidDiscountType
	}
	if c.DiscountValue == nil || c.DiscountValue.IsNegative() {
		return ErrInvalidDiscountValue
	}
	if c.DiscountType == DiscountTypePercentage && c.DiscountValue.GreaterThan(Cents(10000)) {
		return ErrInvalidDiscountValue
	}
	if c.UsageLimit != nil && *c.UsageLimit < 0 {
		return ErrInvalidDiscountValue
	}
	return nil
}

// Status reports why the coupon is or is not usable at now. Window bounds are inclusive.
func (c *Coupon) Status(now time.Time) CouponReason {
	switch {
	case !c.Active:
		return CouponInactive
	case c.ValidFrom != nil && now.Before(*c.ValidFrom):
		return CouponNotStarted
	case c.ValidUntil != nil && now.After(*c.ValidUntil):
		return CouponExpired
	case c.IsExhausted():
		return CouponUsageLimitReached
	}
	return CouponOK
}

// IsValid reports whether the coupon may be applied at now.
func (c *Coupon) IsValid(now time.Time) bool {
	return c.Status(now) == CouponOK
}

// IsExhausted reports whether the usage limit has been reached.
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit
}

// CouponTarget is what a coupon is being applied to.
type CouponTarget struct {
	ServiceID  string
	CategoryID string
}

// AppliesTo reports whether every configured applicability list contains the target.
func (c *Coupon) AppliesTo(target CouponTarget) bool {
	if c.ApplicableServiceIDs != nil && !contains(c.ApplicableServiceIDs, target.ServiceID) {
		return false
	}
	if c.ApplicableCategoryIDs != nil && !contains(c.ApplicableCategoryIDs, target.CategoryID) {
		return false
	}
	return true
}

// CouponEvaluation is the discount a coupon grants plus the reason for it.
type CouponEvaluation struct {
	Discount *Money
	Reason   CouponReason
}

// Evaluate computes the coupon discount on base. Non-applicable coupons yield zero.
func (c *Coupon) Evaluate(base *Money, target CouponTarget, now time.Time) CouponEvaluation {
	if reason := c.Status(now); reason != CouponOK {
		return CouponEvaluation{Discount: Zero(), Reason: reason}
	}
	if c.MinOrderAmount != nil && base.LessThan(c.MinOrderAmount) {
		return CouponEvaluation{Discount: Zero(), Reason: CouponMinOrderNotMet}
	}
	if !c.AppliesTo(target) {
		return CouponEvaluation{Discount: Zero(), Reason: CouponNotApplicable}
	}

	var discount *Money
	if c.DiscountType == DiscountTypePercentage {
		discount = base.Percent(c.DiscountValue.Rat())
	} else {
		discount = c.DiscountValue.Copy()
	}
	if c.MaxDiscountAmount != nil {
		discount = discount.Min(c.MaxDiscountAmount)
	}
	return CouponEvaluation{Discount: discount.Round2(), Reason: CouponOK}
}

// CalculateDiscount is the coupon discount on base, or zero when the coupon does not apply.
func (c *Coupon) CalculateDiscount(base *Money, target CouponTarget, now time.Time) *Money {
	return c.Evaluate(base, target, now).Discount
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
