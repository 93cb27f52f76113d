package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday afternoon, outside every configured special period.
var plainWeekday = time.Date(2026, 3, 11, 13, 0, 0, 0, time.UTC)

func TestPricingCalculator_WeeklyBookingWithBulkQuantity(t *testing.T) {
	pc := NewPricingCalculator(LinePricer{}, BulkPolicyFlat)

	breakdown, err := pc.Calculate(PricingInput{
		Service: testService(t),
		Selections: []Selection{
			{OptionID: "opt-fixed"},
			{OptionID: "opt-rooms", Quantity: Qty(3)},
		},
		Frequency:     FrequencyWeekly,
		BookingDate:   plainWeekday,
		SpecialPeriod: testSpecialPeriods(),
		Now:           plainWeekday,
	})
	require.NoError(t, err)

	assert.Equal(t, "80.00", breakdown.BaseAmount.String())
	assert.Equal(t, "12.00", breakdown.FrequencyDiscount.String())
	assert.Equal(t, "26.66", breakdown.BulkDiscount.String())
	assert.Equal(t, "0.00", breakdown.CouponDiscount.String())
	assert.Equal(t, "0.00", breakdown.SpecialPeriodAdjustment.String())
	assert.Equal(t, "41.34", breakdown.FinalAmount.String())
	assert.Equal(t, int64(3), breakdown.SpecialPeriodVersion)
	assert.Len(t, breakdown.LineItems, 2)
}

func TestPricingCalculator_Frequency(t *testing.T) {
	pc := NewPricingCalculator(LinePricer{}, BulkPolicyFlat)

	tests := []struct {
		frequency Frequency
		want      string
	}{
		{FrequencyWeekly, "7.50"},
		{FrequencyBiweekly, "5.00"},
		{FrequencyMonthly, "2.50"},
		{FrequencyOneTime, "0.00"},
		{"", "0.00"},
		{"fortnightly", "0.00"},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			breakdown, err := pc.Calculate(PricingInput{
				Service:     testService(t),
				Selections:  []Selection{{OptionID: "opt-fixed"}},
				Frequency:   tt.frequency,
				BookingDate: plainWeekday,
				Now:         plainWeekday,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, breakdown.FrequencyDiscount.String())
		})
	}
}

func TestPricingCalculator_TieredBulkPolicy(t *testing.T) {
	pc := NewPricingCalculator(LinePricer{}, BulkPolicyTiered)

	tests := []struct {
		name       string
		selections []Selection
		want       string
	}{
		{
			name:       "below four units",
			selections: []Selection{{OptionID: "opt-rooms", Quantity: Qty(3)}},
			want:       "0.00",
		},
		{
			name:       "four units earns five percent",
			selections: []Selection{{OptionID: "opt-rooms", Quantity: Qty(4)}},
			want:       "2.00",
		},
		{
			name: "eight units across options earns ten percent",
			selections: []Selection{
				{OptionID: "opt-fixed"},
				{OptionID: "opt-rooms", Quantity: Qty(7)},
			},
			want: "12.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breakdown, err := pc.Calculate(PricingInput{
				Service:     testService(t),
				Selections:  tt.selections,
				BookingDate: plainWeekday,
				Now:         plainWeekday,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, breakdown.BulkDiscount.String())
		})
	}
}

func TestPricingCalculator_Coupons(t *testing.T) {
	pc := NewPricingCalculator(LinePricer{}, BulkPolicyFlat)
	svc := testService(t)
	svc.Options = append(svc.Options, &ServiceOption{
		ID: "opt-deep", ServiceID: svc.ID, Label: "Deep clean", UnitPrice: Cents(20000), Active: true,
	})

	t.Run("exhausted coupon gives no discount", func(t *testing.T) {
		breakdown, err := pc.Calculate(PricingInput{
			Service:     svc,
			Selections:  []Selection{{OptionID: "opt-deep"}},
			BookingDate: plainWeekday,
			Now:         plainWeekday,
			Coupon: &Coupon{
				ID: "c-1", Code: "SAVE10", DiscountType: DiscountTypeFixed, DiscountValue: Cents(1000),
				MinOrderAmount: Cents(5000), UsageLimit: Qty(5), UsageCount: 5, Active: true,
			},
		})
		require.NoError(t, err)

		assert.True(t, breakdown.CouponDiscount.IsZero())
		assert.Empty(t, breakdown.CouponID)
		assert.Equal(t, "200.00", breakdown.FinalAmount.String())
	})

	t.Run("percentage coupon capped at max discount", func(t *testing.T) {
		breakdown, err := pc.Calculate(PricingInput{
			Service:     svc,
			Selections:  []Selection{{OptionID: "opt-deep"}},
			BookingDate: plainWeekday,
			Now:         plainWeekday,
			Coupon: &Coupon{
				ID: "c-2", Code: "TWENTY", DiscountType: DiscountTypePercentage, DiscountValue: Cents(2000),
				MaxDiscountAmount: Cents(1500), Active: true,
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "15.00", breakdown.CouponDiscount.String())
		assert.Equal(t, "c-2", breakdown.CouponID)
		assert.Equal(t, "TWENTY", breakdown.CouponCode)
		assert.Equal(t, "185.00", breakdown.FinalAmount.String())
	})

	t.Run("final amount never goes negative", func(t *testing.T) {
		breakdown, err := pc.Calculate(PricingInput{
			Service:     svc,
			Selections:  []Selection{{OptionID: "opt-fixed"}, {OptionID: "opt-rooms", Quantity: Qty(3)}},
			Frequency:   FrequencyWeekly,
			BookingDate: plainWeekday,
			Now:         plainWeekday,
			Coupon: &Coupon{
				ID: "c-3", Code: "HUGE", DiscountType: DiscountTypeFixed, DiscountValue: Cents(50000), Active: true,
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "500.00", breakdown.CouponDiscount.String())
		assert.True(t, breakdown.FinalAmount.IsZero())
	})
}

func TestPricingCalculator_SpecialPeriodsStack(t *testing.T) {
	pc := NewPricingCalculator(LinePricer{}, BulkPolicyFlat)
	christmasSaturday := time.Date(2027, 12, 25, 10, 0, 0, 0, time.UTC)

	breakdown, err := pc.Calculate(PricingInput{
		Service:       testService(t),
		Selections:    []Selection{{OptionID: "opt-fixed"}},
		BookingDate:   christmasSaturday,
		SpecialPeriod: testSpecialPeriods(),
		Now:           plainWeekday,
	})
	require.NoError(t, err)

	assert.Equal(t, "35.00", breakdown.SpecialPeriodAdjustment.String())
	assert.Len(t, breakdown.SpecialPeriods, 3)
	assert.Equal(t, "85.00", breakdown.FinalAmount.String())
}

func TestPricingCalculator_Idempotent(t *testing.T) {
	pc := NewPricingCalculator(LinePricer{}, BulkPolicyFlat)
	in := PricingInput{
		Service:       testService(t),
		Selections:    []Selection{{OptionID: "opt-fixed"}, {OptionID: "opt-rooms", Quantity: Qty(2)}},
		Frequency:     FrequencyBiweekly,
		BookingDate:   plainWeekday,
		SpecialPeriod: testSpecialPeriods(),
		Now:           plainWeekday,
	}

	first, err := pc.Calculate(in)
	require.NoError(t, err)
	second, err := pc.Calculate(in)
	require.NoError(t, err)

	assert.True(t, first.FinalAmount.Equals(second.FinalAmount))
	assert.True(t, first.BulkDiscount.Equals(second.BulkDiscount))
}

func TestPricingCalculator_RequiresService(t *testing.T) {
	pc := NewPricingCalculator(LinePricer{}, BulkPolicyFlat)

	_, err := pc.Calculate(PricingInput{})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "service_id", ve.Field)
}
