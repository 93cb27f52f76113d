package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_booking"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_booking_option"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_coupon"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_service_option"
)

func nullMoney(n spanner.NullNumeric) *domain.Money {
	if !n.Valid {
		return nil
	}
	return domain.NewMoneyFromRat(&n.Numeric)
}

func nullInt(n spanner.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullTime(n spanner.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

func optionFromData(d *m_service_option.Data) (*domain.ServiceOption, error) {
	opt, err := domain.NewServiceOption(
		d.OptionID,
		d.ServiceID,
		d.Label,
		domain.NewMoneyFromRat(&d.UnitPrice),
		d.IsVariable,
		nullInt(d.MinQty),
		nullInt(d.MaxQty),
	)
	if err != nil {
		return nil, err
	}
	opt.Active = d.IsActive
	return opt, nil
}

func couponFromData(d *m_coupon.Data) *domain.Coupon {
	return &domain.Coupon{
		ID:                    d.CouponID,
		Code:                  d.Code,
		DiscountType:          domain.DiscountType(d.DiscountType),
		DiscountValue:         domain.NewMoneyFromRat(&d.DiscountValue),
		MinOrderAmount:        nullMoney(d.MinOrderAmount),
		MaxDiscountAmount:     nullMoney(d.MaxDiscountAmount),
		UsageLimit:            nullInt(d.UsageLimit),
		UsageCount:            d.UsageCount,
		ValidFrom:             nullTime(d.ValidFrom),
		ValidUntil:            nullTime(d.ValidUntil),
		Active:                d.IsActive,
		ApplicableCategoryIDs: d.ApplicableCategoryIDs,
		ApplicableServiceIDs:  d.ApplicableServiceIDs,
	}
}

func couponToData(c *domain.Coupon) *m_coupon.Data {
	d := &m_coupon.Data{
		CouponID:              c.ID,
		Code:                  c.Code,
		DiscountType:          string(c.DiscountType),
		DiscountValue:         *c.DiscountValue.Rat(),
		UsageCount:            c.UsageCount,
		IsActive:              c.Active,
		ApplicableCategoryIDs: c.ApplicableCategoryIDs,
		ApplicableServiceIDs:  c.ApplicableServiceIDs,
	}
	if c.MinOrderAmount != nil {
		d.MinOrderAmount = spanner.NullNumeric{Numeric: *c.MinOrderAmount.Rat(), Valid: true}
	}
	if c.MaxDiscountAmount != nil {
		d.MaxDiscountAmount = spanner.NullNumeric{Numeric: *c.MaxDiscountAmount.Rat(), Valid: true}
	}
	if c.UsageLimit != nil {
		d.UsageLimit = spanner.NullInt64{Int64: *c.UsageLimit, Valid: true}
	}
	if c.ValidFrom != nil {
		d.ValidFrom = spanner.NullTime{Time: *c.ValidFrom, Valid: true}
	}
	if c.ValidUntil != nil {
		d.ValidUntil = spanner.NullTime{Time: *c.ValidUntil, Valid: true}
	}
	return d
}

func bookingToData(b *domain.Booking) *m_booking.Data {
	amounts := b.Amounts()
	d := &m_booking.Data{
		BookingID:               b.ID(),
		ServiceID:               b.ServiceID(),
		BookingDate:             b.BookingDate(),
		Frequency:               string(b.Frequency()),
		Status:                  string(b.Status()),
		BaseAmount:              *amounts.BaseAmount.Rat(),
		FrequencyDiscount:       *amounts.FrequencyDiscount.Rat(),
		BulkDiscount:            *amounts.BulkDiscount.Rat(),
		CouponDiscount:          *amounts.CouponDiscount.Rat(),
		SpecialPeriodAdjustment: *amounts.SpecialPeriodAdjustment.Rat(),
		FinalAmount:             *amounts.FinalAmount.Rat(),
		Version:                 b.Version(),
		CreatedAt:               b.CreatedAt(),
		UpdatedAt:               b.UpdatedAt(),
	}
	if b.CouponID() != "" {
		d.CouponID = spanner.NullString{StringVal: b.CouponID(), Valid: true}
	}
	return d
}

func bookingOptionsToData(b *domain.Booking) []*m_booking_option.Data {
	out := make([]*m_booking_option.Data, 0, len(b.Options()))
	for _, opt := range b.Options() {
		out = append(out, &m_booking_option.Data{
			BookingID: b.ID(),
			OptionID:  opt.OptionID,
			Label:     opt.Label,
			Quantity:  opt.Quantity,
			UnitPrice: *opt.UnitPrice.Rat(),
			Total:     *opt.Total.Rat(),
		})
	}
	return out
}

func bookingFromData(d *m_booking.Data, options []*m_booking_option.Data) (*domain.Booking, error) {
	status, err := domain.ParseBookingStatus(d.Status)
	if err != nil {
		return nil, err
	}

	opts := make([]domain.BookingOption, 0, len(options))
	for _, o := range options {
		opts = append(opts, domain.BookingOption{
			OptionID:  o.OptionID,
			Label:     o.Label,
			Quantity:  o.Quantity,
			UnitPrice: domain.NewMoneyFromRat(&o.UnitPrice),
			Total:     domain.NewMoneyFromRat(&o.Total),
		})
	}

	return domain.ReconstructBooking(
		d.BookingID,
		d.ServiceID,
		d.CouponID.StringVal,
		d.BookingDate,
		domain.Frequency(d.Frequency),
		status,
		domain.BookingAmounts{
			BaseAmount:              domain.NewMoneyFromRat(&d.BaseAmount),
			FrequencyDiscount:       domain.NewMoneyFromRat(&d.FrequencyDiscount),
			BulkDiscount:            domain.NewMoneyFromRat(&d.BulkDiscount),
			CouponDiscount:          domain.NewMoneyFromRat(&d.CouponDiscount),
			SpecialPeriodAdjustment: domain.NewMoneyFromRat(&d.SpecialPeriodAdjustment),
			FinalAmount:             domain.NewMoneyFromRat(&d.FinalAmount),
		},
		opts,
		d.Version,
		d.CreatedAt,
		d.UpdatedAt,
	), nil
}
