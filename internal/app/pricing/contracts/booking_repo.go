package contracts

import (
	"context"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

//go:generate mockgen -source=booking_repo.go -destination=mocks/mock_booking_repo.go -package=mocks

// Transition is a booking status change ready to be committed.
type Transition struct {
	Booking *domain.Booking
	// From is the status the booking had when it was loaded.
	From domain.BookingStatus
	// UsageDelta is applied to the booking's coupon in the same transaction.
	UsageDelta int
	Events     []*OutboxEvent
}

// BookingRepository persists bookings. Writes include outbox events atomically.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking, events []*OutboxEvent) error
	GetByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	// ApplyTransition re-checks the stored status, applies the coupon usage delta and writes
	// the booking in one transaction. It returns domain.ErrConcurrentBookingUpdate when the
	// stored status no longer equals From, and domain.ErrUsageLimitExceeded when an
	// increment would exceed the coupon limit.
	ApplyTransition(ctx context.Context, t *Transition) (LedgerResult, error)
}
