package m_coupon

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the coupons table.
// NULL applicability arrays decode to nil slices, meaning "applies to all".
type Data struct {
	CouponID              string              `spanner:"coupon_id"`
	Code                  string              `spanner:"code"`
	DiscountType          string              `spanner:"discount_type"`
	DiscountValue         big.Rat             `spanner:"discount_value"`
	MinOrderAmount        spanner.NullNumeric `spanner:"min_order_amount"`
	MaxDiscountAmount     spanner.NullNumeric `spanner:"max_discount_amount"`
	UsageLimit            spanner.NullInt64   `spanner:"usage_limit"`
	UsageCount            int64               `spanner:"usage_count"`
	ValidFrom             spanner.NullTime    `spanner:"valid_from"`
	ValidUntil            spanner.NullTime    `spanner:"valid_until"`
	IsActive              bool                `spanner:"is_active"`
	ApplicableCategoryIDs []string            `spanner:"applicable_category_ids"`
	ApplicableServiceIDs  []string            `spanner:"applicable_service_ids"`
}

// Columns lists the readable columns in Data order.
func Columns() []string {
	return []string{
		CouponID, Code, DiscountType, DiscountValue, MinOrderAmount, MaxDiscountAmount,
		UsageLimit, UsageCount, ValidFrom, ValidUntil, IsActive,
		ApplicableCategoryIDs, ApplicableServiceIDs,
	}
}
