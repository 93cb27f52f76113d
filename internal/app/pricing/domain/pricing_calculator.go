package domain

import "time"

// PriceBreakdown is the full result of pricing one booking request.
type PriceBreakdown struct {
	BaseAmount              *Money
	FrequencyDiscount       *Money
	BulkDiscount            *Money
	CouponDiscount          *Money
	SpecialPeriodAdjustment *Money
	FinalAmount             *Money
	LineItems               []LineItem
	SpecialPeriods          []AppliedSpecialPeriod
	CouponID                string
	CouponCode              string
	SpecialPeriodVersion    int64
}

// PricingInput is everything the calculator needs; it performs no I/O.
type PricingInput struct {
	Service       *Service
	Selections    []Selection
	Frequency     Frequency
	BookingDate   time.Time
	Coupon        *Coupon
	SpecialPeriod *SpecialPeriodConfig
	Now           time.Time
}

// PricingCalculator combines line pricing, discounts and surcharges.
// It is a pure domain service with no external dependencies.
type PricingCalculator struct {
	lines LinePricer
	bulk  BulkPolicy
}

// NewPricingCalculator creates a calculator with the given policies.
func NewPricingCalculator(lines LinePricer, bulk BulkPolicy) *PricingCalculator {
	return &PricingCalculator{lines: lines, bulk: bulk}
}

// WithLinePricer returns a copy of the calculator using lp for line items.
func (pc *PricingCalculator) WithLinePricer(lp LinePricer) *PricingCalculator {
	return &PricingCalculator{lines: lp, bulk: pc.bulk}
}

// Calculate prices the input. Every component is computed off the base amount and rounded
// to cents, then the final sum is rounded again and floored at zero.
func (pc *PricingCalculator) Calculate(in PricingInput) (*PriceBreakdown, error) {
	if in.Service == nil {
		return nil, NewValidationError("service_id", "service is required")
	}

	lines, err := pc.lines.PriceSelections(in.Service, in.Selections)
	if err != nil {
		return nil, err
	}
	base := lines.BaseAmount

	breakdown := &PriceBreakdown{
		BaseAmount:              base,
		FrequencyDiscount:       FrequencyDiscount(base, in.Frequency),
		BulkDiscount:            pc.bulk.BulkDiscount(lines),
		CouponDiscount:          Zero(),
		SpecialPeriodAdjustment: Zero(),
		LineItems:               lines.Items,
	}

	if in.Coupon != nil {
		target := CouponTarget{ServiceID: in.Service.ID, CategoryID: in.Service.CategoryID}
		discount := in.Coupon.CalculateDiscount(base, target, in.Now)
		if discount.IsPositive() {
			breakdown.CouponDiscount = discount
			breakdown.CouponID = in.Coupon.ID
			breakdown.CouponCode = in.Coupon.Code
		}
	}

	if in.SpecialPeriod != nil {
		breakdown.SpecialPeriods = in.SpecialPeriod.Match(in.BookingDate)
		breakdown.SpecialPeriodAdjustment = Adjustment(breakdown.SpecialPeriods)
		breakdown.SpecialPeriodVersion = in.SpecialPeriod.Version
	}

	final := base.
		Subtract(breakdown.FrequencyDiscount).
		Subtract(breakdown.BulkDiscount).
		Subtract(breakdown.CouponDiscount).
		Add(breakdown.SpecialPeriodAdjustment)
	breakdown.FinalAmount = final.Round2().FloorZero()

	return breakdown, nil
}
