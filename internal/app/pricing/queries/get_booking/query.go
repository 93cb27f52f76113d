package get_booking

import (
	"context"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

// Request contains the booking ID to retrieve.
type Request struct {
	BookingID string
}

// Query handles the get booking query.
type Query struct {
	bookings contracts.BookingRepository
}

// NewQuery creates a new get booking query.
func NewQuery(bookings contracts.BookingRepository) *Query {
	return &Query{bookings: bookings}
}

// Execute retrieves a booking by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	if req.BookingID == "" {
		return nil, domain.NewValidationError("booking_id", "is required")
	}
	return q.bookings.GetByID(ctx, req.BookingID)
}
