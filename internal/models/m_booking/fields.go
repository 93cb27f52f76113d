package m_booking

// Field name constants for the bookings table.
const (
	TableName = "bookings"

	BookingID               = "booking_id"
	ServiceID               = "service_id"
	CouponID                = "coupon_id"
	BookingDate             = "booking_date"
	Frequency               = "frequency"
	Status                  = "status"
	BaseAmount              = "base_amount"
	FrequencyDiscount       = "frequency_discount"
	BulkDiscount            = "bulk_discount"
	CouponDiscount          = "coupon_discount"
	SpecialPeriodAdjustment = "special_period_adjustment"
	FinalAmount             = "final_amount"
	Version                 = "version"
	CreatedAt               = "created_at"
	UpdatedAt               = "updated_at"
)
