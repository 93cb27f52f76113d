package pricing

import (
	"time"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/calculate_pricing"
)

func moneyToWire(m *domain.Money) string {
	if m == nil {
		return domain.Zero().String()
	}
	return m.Round2().String()
}

func timeToWire(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// wireToPricingRequest converts a wire pricing request to the use case request.
func wireToPricingRequest(req *CalculatePricingRequest) *calculate_pricing.Request {
	options := make([]calculate_pricing.SelectedOption, 0, len(req.SelectedOptions))
	for _, o := range req.SelectedOptions {
		options = append(options, calculate_pricing.SelectedOption{
			OptionID: o.OptionID,
			Quantity: o.Quantity,
		})
	}
	return &calculate_pricing.Request{
		ServiceID:       req.ServiceID,
		BookingDate:     req.BookingDate,
		SelectedOptions: options,
		Frequency:       req.Frequency,
		CouponCode:      req.CouponCode,
	}
}

// breakdownToWire converts a domain breakdown to its wire form.
func breakdownToWire(b *domain.PriceBreakdown) *PriceBreakdown {
	out := &PriceBreakdown{
		BaseAmount:              moneyToWire(b.BaseAmount),
		FrequencyDiscount:       moneyToWire(b.FrequencyDiscount),
		BulkDiscount:            moneyToWire(b.BulkDiscount),
		CouponDiscount:          moneyToWire(b.CouponDiscount),
		SpecialPeriodAdjustment: moneyToWire(b.SpecialPeriodAdjustment),
		FinalAmount:             moneyToWire(b.FinalAmount),
		Breakdown: Breakdown{
			SelectedOptions: make([]LineItem, 0, len(b.LineItems)),
			SpecialPeriods:  make([]SpecialPeriod, 0, len(b.SpecialPeriods)),
		},
		CouponCode:           b.CouponCode,
		SpecialPeriodVersion: b.SpecialPeriodVersion,
	}
	for _, li := range b.LineItems {
		out.Breakdown.SelectedOptions = append(out.Breakdown.SelectedOptions, LineItem{
			OptionID: li.OptionID,
			Label:    li.Label,
			Quantity: li.Quantity,
			Price:    moneyToWire(li.Price),
			Total:    moneyToWire(li.Total),
		})
	}
	for _, sp := range b.SpecialPeriods {
		out.Breakdown.SpecialPeriods = append(out.Breakdown.SpecialPeriods, SpecialPeriod{
			Type:      string(sp.Type),
			Surcharge: moneyToWire(sp.Surcharge),
		})
	}
	return out
}

// bookingToWire converts a booking aggregate to its wire form.
func bookingToWire(b *domain.Booking) *Booking {
	amounts := b.Amounts()
	out := &Booking{
		BookingID:               b.ID(),
		ServiceID:               b.ServiceID(),
		CouponID:                b.CouponID(),
		BookingDate:             timeToWire(b.BookingDate()),
		Frequency:               string(b.Frequency()),
		Status:                  string(b.Status()),
		BaseAmount:              moneyToWire(amounts.BaseAmount),
		FrequencyDiscount:       moneyToWire(amounts.FrequencyDiscount),
		BulkDiscount:            moneyToWire(amounts.BulkDiscount),
		CouponDiscount:          moneyToWire(amounts.CouponDiscount),
		SpecialPeriodAdjustment: moneyToWire(amounts.SpecialPeriodAdjustment),
		FinalAmount:             moneyToWire(amounts.FinalAmount),
		Options:                 make([]BookingOption, 0, len(b.Options())),
		Version:                 b.Version(),
		CreatedAt:               timeToWire(b.CreatedAt()),
		UpdatedAt:               timeToWire(b.UpdatedAt()),
	}
	for _, o := range b.Options() {
		out.Options = append(out.Options, BookingOption{
			OptionID:  o.OptionID,
			Label:     o.Label,
			Quantity:  o.Quantity,
			UnitPrice: moneyToWire(o.UnitPrice),
			Total:     moneyToWire(o.Total),
		})
	}
	return out
}

func recountsToWire(recounts []contracts.UsageRecount) []UsageRecount {
	out := make([]UsageRecount, 0, len(recounts))
	for _, r := range recounts {
		out = append(out, UsageRecount{CouponID: r.CouponID, Previous: r.Previous, Current: r.Current})
	}
	return out
}
