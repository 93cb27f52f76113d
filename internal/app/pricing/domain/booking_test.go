package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T, couponID string) *Booking {
	t.Helper()

	breakdown := &PriceBreakdown{
		BaseAmount:              Cents(8000),
		FrequencyDiscount:       Cents(1200),
		BulkDiscount:            Cents(2666),
		CouponDiscount:          Zero(),
		SpecialPeriodAdjustment: Zero(),
		FinalAmount:             Cents(4134),
		LineItems: []LineItem{
			{OptionID: "opt-fixed", Label: "Standard clean", Quantity: 1, Price: Cents(5000), Total: Cents(5000)},
		},
		CouponID: couponID,
	}
	b, err := NewBooking("bk-1", "svc-1", plainWeekday, FrequencyWeekly, breakdown, plainWeekday)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	b := newTestBooking(t, "c-1")

	assert.Equal(t, BookingPending, b.Status())
	assert.Equal(t, "c-1", b.CouponID())
	assert.Equal(t, "41.34", b.Amounts().FinalAmount.String())
	require.Len(t, b.Options(), 1)
	require.Len(t, b.DomainEvents(), 1)
	assert.Equal(t, "booking.created", b.DomainEvents()[0].EventType())
	assert.False(t, b.Changes().HasChanges())
}

func TestBooking_Transition(t *testing.T) {
	tests := []struct {
		name      string
		path      []BookingStatus
		wantDelta []int
	}{
		{
			name:      "confirm then complete counts once",
			path:      []BookingStatus{BookingConfirmed, BookingCompleted},
			wantDelta: []int{1, 0},
		},
		{
			name:      "confirm then cancel releases the use",
			path:      []BookingStatus{BookingConfirmed, BookingCancelled},
			wantDelta: []int{1, -1},
		},
		{
			name:      "cancel while pending never counted",
			path:      []BookingStatus{BookingCancelled},
			wantDelta: []int{0},
		},
		{
			name:      "revert completed to confirmed keeps the use",
			path:      []BookingStatus{BookingConfirmed, BookingCompleted, BookingConfirmed},
			wantDelta: []int{1, 0, 0},
		},
		{
			name:      "revert confirmed to pending releases the use",
			path:      []BookingStatus{BookingConfirmed, BookingPending},
			wantDelta: []int{1, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBooking(t, "c-1")
			for i, next := range tt.path {
				delta, err := b.Transition(next, plainWeekday.Add(time.Hour))
				require.NoError(t, err)
				assert.Equal(t, tt.wantDelta[i], delta, "step %d", i)
			}
			assert.True(t, b.Changes().Dirty(FieldStatus))
			assert.Len(t, b.DomainEvents(), len(tt.path)+1)
		})
	}
}

func TestBooking_TransitionWithoutCoupon(t *testing.T) {
	b := newTestBooking(t, "")

	delta, err := b.Transition(BookingConfirmed, plainWeekday)
	require.NoError(t, err)
	assert.Zero(t, delta)
}

func TestBooking_InvalidTransitions(t *testing.T) {
	b := newTestBooking(t, "c-1")

	_, err := b.Transition(BookingCompleted, plainWeekday)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)

	_, err = b.Transition(BookingCancelled, plainWeekday)
	require.NoError(t, err)

	_, err = b.Transition(BookingConfirmed, plainWeekday)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, BookingCancelled, b.Status())
}

func TestParseBookingStatus(t *testing.T) {
	st, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, BookingConfirmed, st)
	assert.True(t, st.CountsAsUsed())

	_, err = ParseBookingStatus("archived")
	assert.ErrorIs(t, err, ErrUnknownBookingStatus)
}

func TestUsageDelta(t *testing.T) {
	assert.Equal(t, 1, UsageDelta(BookingPending, BookingConfirmed))
	assert.Equal(t, 0, UsageDelta(BookingConfirmed, BookingCompleted))
	assert.Equal(t, -1, UsageDelta(BookingCompleted, BookingCancelled))
	assert.Equal(t, 0, UsageDelta(BookingPending, BookingCancelled))
}

func TestPricingError(t *testing.T) {
	cause := NewValidationError("booking_date", "is required")
	err := NewPricingError(cause)

	assert.Equal(t, "Error calculating pricing: booking_date: is required", err.Error())

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "booking_date", ve.Field)

	assert.Same(t, err, NewPricingError(err))
}
