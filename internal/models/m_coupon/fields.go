package m_coupon

// Field name constants for the coupons table.
const (
	TableName = "coupons"
	CodeIndex = "coupons_by_code"

	CouponID              = "coupon_id"
	Code                  = "code"
	DiscountType          = "discount_type"
	DiscountValue         = "discount_value"
	MinOrderAmount        = "min_order_amount"
	MaxDiscountAmount     = "max_discount_amount"
	UsageLimit            = "usage_limit"
	UsageCount            = "usage_count"
	ValidFrom             = "valid_from"
	ValidUntil            = "valid_until"
	IsActive              = "is_active"
	ApplicableCategoryIDs = "applicable_category_ids"
	ApplicableServiceIDs  = "applicable_service_ids"
	CreatedAt             = "created_at"
	UpdatedAt             = "updated_at"
)
