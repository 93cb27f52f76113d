package m_booking

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the bookings table.
type Data struct {
	BookingID               string             `spanner:"booking_id"`
	ServiceID               string             `spanner:"service_id"`
	CouponID                spanner.NullString `spanner:"coupon_id"`
	BookingDate             time.Time          `spanner:"booking_date"`
	Frequency               string             `spanner:"frequency"`
	Status                  string             `spanner:"status"`
	BaseAmount              big.Rat            `spanner:"base_amount"`
	FrequencyDiscount       big.Rat            `spanner:"frequency_discount"`
	BulkDiscount            big.Rat            `spanner:"bulk_discount"`
	CouponDiscount          big.Rat            `spanner:"coupon_discount"`
	SpecialPeriodAdjustment big.Rat            `spanner:"special_period_adjustment"`
	FinalAmount             big.Rat            `spanner:"final_amount"`
	Version                 int64              `spanner:"version"`
	CreatedAt               time.Time          `spanner:"created_at"`
	UpdatedAt               time.Time          `spanner:"updated_at"`
}

// Columns lists every column in Data order.
func Columns() []string {
	return []string{
		BookingID, ServiceID, CouponID, BookingDate, Frequency, Status,
		BaseAmount, FrequencyDiscount, BulkDiscount, CouponDiscount, SpecialPeriodAdjustment, FinalAmount,
		Version, CreatedAt, UpdatedAt,
	}
}
