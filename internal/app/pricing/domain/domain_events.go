package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// BookingCreatedEvent is emitted when a booking is placed.
type BookingCreatedEvent struct {
	BookingID   string    `json:"booking_id"`
	ServiceID   string    `json:"service_id"`
	CouponID    string    `json:"coupon_id,omitempty"`
	BookingDate time.Time `json:"booking_date"`
	FinalAmount *Money    `json:"final_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *BookingCreatedEvent) EventType() string   { return "booking.created" }
func (e *BookingCreatedEvent) AggregateID() string { return e.BookingID }

// BookingStatusChangedEvent is emitted on every status transition.
type BookingStatusChangedEvent struct {
	BookingID  string        `json:"booking_id"`
	From       BookingStatus `json:"from"`
	To         BookingStatus `json:"to"`
	CouponID   string        `json:"coupon_id,omitempty"`
	UsageDelta int           `json:"usage_delta"`
	ChangedAt  time.Time     `json:"changed_at"`
}

func (e *BookingStatusChangedEvent) EventType() string   { return "booking.status_changed" }
func (e *BookingStatusChangedEvent) AggregateID() string { return e.BookingID }
