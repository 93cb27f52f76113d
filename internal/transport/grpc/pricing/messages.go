package pricing

// Wire messages for PricingService. Monetary fields are decimal strings with
// exactly two fractional digits.

type SelectedOption struct {
	OptionID string `json:"option_id"`
	Quantity *int64 `json:"quantity,omitempty"`
}

type CalculatePricingRequest struct {
	ServiceID       string           `json:"service_id"`
	BookingDate     string           `json:"booking_date"`
	SelectedOptions []SelectedOption `json:"selected_options"`
	Frequency       string           `json:"frequency,omitempty"`
	CouponCode      string           `json:"coupon_code,omitempty"`
}

type LineItem struct {
	OptionID string `json:"option_id"`
	Label    string `json:"label"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

type SpecialPeriod struct {
	Type      string `json:"type"`
	Surcharge string `json:"surcharge"`
}

// Breakdown details the priced lines and applied surcharges. Both lists are
// always present, empty when nothing applies.
type Breakdown struct {
	SelectedOptions []LineItem      `json:"selected_options"`
	SpecialPeriods  []SpecialPeriod `json:"special_periods"`
}

type PriceBreakdown struct {
	BaseAmount              string    `json:"base_amount"`
	FrequencyDiscount       string    `json:"frequency_discount"`
	BulkDiscount            string    `json:"bulk_discount"`
	CouponDiscount          string    `json:"coupon_discount"`
	SpecialPeriodAdjustment string    `json:"special_period_adjustment"`
	FinalAmount             string    `json:"final_amount"`
	Breakdown               Breakdown `json:"breakdown"`
	CouponCode              string    `json:"coupon_code,omitempty"`
	SpecialPeriodVersion    int64     `json:"special_period_version,omitempty"`
}

type CalculatePricingReply struct {
	Pricing *PriceBreakdown `json:"pricing"`
}

type ValidateCouponRequest struct {
	Code       string `json:"code"`
	ServiceID  string `json:"service_id"`
	BaseAmount string `json:"base_amount"`
}

type ValidateCouponReply struct {
	Valid    bool   `json:"valid"`
	Discount string `json:"discount"`
	Reason   string `json:"reason"`
}

// CreateBookingRequest carries the same fields as a pricing request.
type CreateBookingRequest = CalculatePricingRequest

type BookingOption struct {
	OptionID  string `json:"option_id"`
	Label     string `json:"label"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

type Booking struct {
	BookingID               string          `json:"booking_id"`
	ServiceID               string          `json:"service_id"`
	CouponID                string          `json:"coupon_id,omitempty"`
	BookingDate             string          `json:"booking_date"`
	Frequency               string          `json:"frequency,omitempty"`
	Status                  string          `json:"status"`
	BaseAmount              string          `json:"base_amount"`
	FrequencyDiscount       string          `json:"frequency_discount"`
	BulkDiscount            string          `json:"bulk_discount"`
	CouponDiscount          string          `json:"coupon_discount"`
	SpecialPeriodAdjustment string          `json:"special_period_adjustment"`
	FinalAmount             string          `json:"final_amount"`
	Options                 []BookingOption `json:"options"`
	Version                 int64           `json:"version"`
	CreatedAt               string          `json:"created_at"`
	UpdatedAt               string          `json:"updated_at"`
}

type CreateBookingReply struct {
	Booking *Booking `json:"booking"`
}

type UpdateBookingStatusRequest struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type UpdateBookingStatusReply struct {
	Booking    *Booking `json:"booking"`
	UsageDelta int      `json:"usage_delta"`
}

type GetBookingRequest struct {
	BookingID string `json:"booking_id"`
}

type GetBookingReply struct {
	Booking *Booking `json:"booking"`
}

type RecalculateCouponUsageRequest struct {
	// CouponID may be empty to recount every coupon.
	CouponID string `json:"coupon_id,omitempty"`
}

type UsageRecount struct {
	CouponID string `json:"coupon_id"`
	Previous int64  `json:"previous"`
	Current  int64  `json:"current"`
}

type RecalculateCouponUsageReply struct {
	Checked int            `json:"checked"`
	Drifted []UsageRecount `json:"drifted"`
}
