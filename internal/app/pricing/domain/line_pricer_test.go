package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *Service {
	t.Helper()

	fixed, err := NewServiceOption("opt-fixed", "svc-1", "Standard clean", Cents(5000), false, nil, nil)
	require.NoError(t, err)
	rooms, err := NewServiceOption("opt-rooms", "svc-1", "Extra room", Cents(1000), true, Qty(1), Qty(10))
	require.NoError(t, err)

	return &Service{
		ID:         "svc-1",
		Name:       "Home cleaning",
		CategoryID: "cat-home",
		Options:    []*ServiceOption{fixed, rooms},
	}
}

func TestNewServiceOption_Bounds(t *testing.T) {
	_, err := NewServiceOption("o", "s", "x", Cents(100), true, Qty(5), Qty(2))
	assert.ErrorIs(t, err, ErrInvalidBounds)

	_, err = NewServiceOption("o", "s", "x", Cents(-1), false, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestLinePricer_PriceSelections(t *testing.T) {
	svc := testService(t)

	t.Run("variable quantity multiplies unit price", func(t *testing.T) {
		lines, err := LinePricer{}.PriceSelections(svc, []Selection{
			{OptionID: "opt-fixed"},
			{OptionID: "opt-rooms", Quantity: Qty(3)},
		})
		require.NoError(t, err)

		assert.Equal(t, "80.00", lines.BaseAmount.String())
		assert.True(t, lines.HasMultipleQuantity)
		require.Len(t, lines.Items, 2)
		assert.Equal(t, int64(3), lines.Items[1].Quantity)
		assert.Equal(t, "10.00", lines.Items[1].Price.String())
		assert.Equal(t, "30.00", lines.Items[1].Total.String())
	})

	t.Run("non-variable option ignores supplied quantity", func(t *testing.T) {
		lines, err := LinePricer{}.PriceSelections(svc, []Selection{
			{OptionID: "opt-fixed", Quantity: Qty(4)},
		})
		require.NoError(t, err)

		assert.Equal(t, "50.00", lines.BaseAmount.String())
		assert.Equal(t, int64(1), lines.Items[0].Quantity)
		assert.False(t, lines.HasMultipleQuantity)
		assert.Equal(t, int64(4), lines.TotalQuantity)
	})

	t.Run("variable option defaults to quantity one", func(t *testing.T) {
		lines, err := LinePricer{}.PriceSelections(svc, []Selection{{OptionID: "opt-rooms"}})
		require.NoError(t, err)

		assert.Equal(t, "10.00", lines.BaseAmount.String())
		assert.False(t, lines.HasMultipleQuantity)
	})

	t.Run("lenient policy skips unknown options", func(t *testing.T) {
		lines, err := LinePricer{Policy: OptionPolicyLenient}.PriceSelections(svc, []Selection{
			{OptionID: "opt-fixed"},
			{OptionID: "opt-missing"},
		})
		require.NoError(t, err)

		assert.Len(t, lines.Items, 1)
		assert.Equal(t, "50.00", lines.BaseAmount.String())
	})

	t.Run("strict policy rejects unknown options", func(t *testing.T) {
		_, err := LinePricer{Policy: OptionPolicyStrict}.PriceSelections(svc, []Selection{
			{OptionID: "opt-missing"},
		})

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "option", nf.Resource)
		assert.ErrorIs(t, err, ErrOptionNotFound)
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		_, err := LinePricer{}.PriceSelections(svc, []Selection{{OptionID: "opt-rooms", Quantity: Qty(-2)}})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "quantity", ve.Field)
	})

	t.Run("non-variable option ignores a negative quantity", func(t *testing.T) {
		lines, err := LinePricer{Policy: OptionPolicyLenient}.PriceSelections(svc, []Selection{
			{OptionID: "opt-fixed", Quantity: Qty(-3)},
		})
		require.NoError(t, err)

		assert.Equal(t, "50.00", lines.BaseAmount.String())
		require.Len(t, lines.Items, 1)
		assert.Equal(t, int64(1), lines.Items[0].Quantity)
		assert.Equal(t, int64(0), lines.TotalQuantity)
	})

	t.Run("skipped unknown option with negative quantity adds nothing", func(t *testing.T) {
		lines, err := LinePricer{Policy: OptionPolicyLenient}.PriceSelections(svc, []Selection{
			{OptionID: "opt-rooms", Quantity: Qty(4)},
			{OptionID: "opt-missing", Quantity: Qty(-5)},
		})
		require.NoError(t, err)

		assert.Equal(t, "40.00", lines.BaseAmount.String())
		assert.Equal(t, int64(4), lines.TotalQuantity)
	})

	t.Run("bounds are ignored unless enforced", func(t *testing.T) {
		lines, err := LinePricer{}.PriceSelections(svc, []Selection{{OptionID: "opt-rooms", Quantity: Qty(25)}})
		require.NoError(t, err)
		assert.Equal(t, "250.00", lines.BaseAmount.String())
	})

	t.Run("enforced bounds reject out-of-range quantities", func(t *testing.T) {
		lp := LinePricer{Policy: OptionPolicyStrict, EnforceBounds: true}

		_, err := lp.PriceSelections(svc, []Selection{{OptionID: "opt-rooms", Quantity: Qty(11)}})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)

		_, err = lp.PriceSelections(svc, []Selection{{OptionID: "opt-rooms", Quantity: Qty(0)}})
		require.ErrorAs(t, err, &ve)

		_, err = lp.PriceSelections(svc, []Selection{{OptionID: "opt-rooms", Quantity: Qty(10)}})
		assert.NoError(t, err)
	})
}

func TestParsePolicies(t *testing.T) {
	p, err := ParseOptionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OptionPolicyLenient, p)

	_, err = ParseOptionPolicy("sometimes")
	assert.Error(t, err)

	b, err := ParseBulkPolicy("tiered")
	require.NoError(t, err)
	assert.Equal(t, BulkPolicyTiered, b)

	_, err = ParseBulkPolicy("huge")
	assert.Error(t, err)
}
