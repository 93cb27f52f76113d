package domain

import (
	"fmt"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Field names for change tracking
const (
	FieldStatus = "status"
)

var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled, BookingPending},
	BookingCompleted: {BookingConfirmed},
	BookingCancelled: nil,
}

// ParseBookingStatus validates a status string.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if _, ok := allowedTransitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBookingStatus, s)
	}
	return st, nil
}

// CountsAsUsed reports whether a booking in this status consumes a coupon use.
func (s BookingStatus) CountsAsUsed() bool {
	return s == BookingConfirmed || s == BookingCompleted
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// UsageDelta is the change a status transition makes to a coupon's usage count: -1, 0 or +1.
func UsageDelta(from, to BookingStatus) int {
	delta := 0
	if to.CountsAsUsed() {
		delta++
	}
	if from.CountsAsUsed() {
		delta--
	}
	return delta
}

// CountedStatuses lists the statuses that count towards coupon usage.
func CountedStatuses() []string {
	return []string{string(BookingConfirmed), string(BookingCompleted)}
}

// BookingOption is one priced option row stored with a booking.
type BookingOption struct {
	OptionID  string
	Label     string
	Quantity  int64
	UnitPrice *Money
	Total     *Money
}

// BookingAmounts is the stored snapshot of a price breakdown.
type BookingAmounts struct {
	BaseAmount              *Money
	FrequencyDiscount       *Money
	BulkDiscount            *Money
	CouponDiscount          *Money
	SpecialPeriodAdjustment *Money
	FinalAmount             *Money
}

// Booking is the aggregate root for a customer booking.
type Booking struct {
	id          string
	serviceID   string
	couponID    string
	bookingDate time.Time
	frequency   Frequency
	status      BookingStatus
	amounts     BookingAmounts
	options     []BookingOption
	version     int64
	createdAt   time.Time
	updatedAt   time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// NewBooking creates a pending booking from a computed breakdown.
func NewBooking(id, serviceID string, bookingDate time.Time, frequency Frequency, breakdown *PriceBreakdown, now time.Time) (*Booking, error) {
	if serviceID == "" {
		return nil, NewValidationError("service_id", "is required")
	}
	if breakdown == nil {
		return nil, NewValidationError("selected_options", "booking has no price")
	}

	options := make([]BookingOption, 0, len(breakdown.LineItems))
	for _, li := range breakdown.LineItems {
		options = append(options, BookingOption{
			OptionID:  li.OptionID,
			Label:     li.Label,
			Quantity:  li.Quantity,
			UnitPrice: li.Price,
			Total:     li.Total,
		})
	}

	b := &Booking{
		id:          id,
		serviceID:   serviceID,
		couponID:    breakdown.CouponID,
		bookingDate: bookingDate,
		frequency:   frequency,
		status:      BookingPending,
		amounts: BookingAmounts{
			BaseAmount:              breakdown.BaseAmount,
			FrequencyDiscount:       breakdown.FrequencyDiscount,
			BulkDiscount:            breakdown.BulkDiscount,
			CouponDiscount:          breakdown.CouponDiscount,
			SpecialPeriodAdjustment: breakdown.SpecialPeriodAdjustment,
			FinalAmount:             breakdown.FinalAmount,
		},
		options:   options,
		version:   1,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
	}

	b.events = append(b.events, &BookingCreatedEvent{
		BookingID:   id,
		ServiceID:   serviceID,
		CouponID:    b.couponID,
		BookingDate: bookingDate,
		FinalAmount: breakdown.FinalAmount,
		CreatedAt:   now,
	})
	return b, nil
}

// ReconstructBooking rebuilds a booking from storage without emitting events.
func ReconstructBooking(
	id, serviceID, couponID string,
	bookingDate time.Time,
	frequency Frequency,
	status BookingStatus,
	amounts BookingAmounts,
	options []BookingOption,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		serviceID:   serviceID,
		couponID:    couponID,
		bookingDate: bookingDate,
		frequency:   frequency,
		status:      status,
		amounts:     amounts,
		options:     options,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		changes:     NewChangeTracker(),
	}
}

// Transition moves the booking to next and returns the coupon usage delta it implies.
func (b *Booking) Transition(next BookingStatus, now time.Time) (int, error) {
	if !b.status.CanTransitionTo(next) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, b.status, next)
	}

	prev := b.status
	b.status = next
	b.updatedAt = now
	b.changes.MarkDirty(FieldStatus)

	delta := 0
	if b.couponID != "" {
		delta = UsageDelta(prev, next)
	}

	b.events = append(b.events, &BookingStatusChangedEvent{
		BookingID:  b.id,
		From:       prev,
		To:         next,
		CouponID:   b.couponID,
		UsageDelta: delta,
		ChangedAt:  now,
	})
	return delta, nil
}

func (b *Booking) ID() string                  { return b.id }
func (b *Booking) ServiceID() string           { return b.serviceID }
func (b *Booking) CouponID() string            { return b.couponID }
func (b *Booking) BookingDate() time.Time      { return b.bookingDate }
func (b *Booking) Frequency() Frequency        { return b.frequency }
func (b *Booking) Status() BookingStatus       { return b.status }
func (b *Booking) Amounts() BookingAmounts     { return b.amounts }
func (b *Booking) Options() []BookingOption    { return b.options }
func (b *Booking) Version() int64              { return b.version }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }
func (b *Booking) Changes() *ChangeTracker     { return b.changes }
func (b *Booking) DomainEvents() []DomainEvent { return b.events }
