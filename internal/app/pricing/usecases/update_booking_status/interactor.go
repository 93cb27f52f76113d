package update_booking_status

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/validation"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/clock"
)

// Request contains the data to move a booking to a new status.
type Request struct {
	BookingID string `json:"booking_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// Result is the updated booking and the coupon usage change that was applied.
type Result struct {
	Booking    *domain.Booking
	UsageDelta int
}

// Interactor handles the update booking status use case.
type Interactor struct {
	bookings contracts.BookingRepository
	clock    clock.Clock
	logger   *zap.Logger
}

// NewInteractor creates a new update booking status interactor.
func NewInteractor(bookings contracts.BookingRepository, clock clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		bookings: bookings,
		clock:    clock,
		logger:   logger,
	}
}

// Execute applies the transition. The status re-check, coupon usage change, booking
// write and outbox events commit together or not at all.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	next, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, domain.NewValidationError("status", err.Error())
	}

	// 1. Load aggregate
	booking, err := i.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	from := booking.Status()

	// 2. Call domain method
	delta, err := booking.Transition(next, i.clock.Now())
	if err != nil {
		return nil, err
	}

	// 3. Enrich events
	events, err := contracts.EnrichEvents(booking.DomainEvents(), func() string { return uuid.New().String() })
	if err != nil {
		return nil, err
	}

	// 4. Commit
	result, err := i.bookings.ApplyTransition(ctx, &contracts.Transition{
		Booking:    booking,
		From:       from,
		UsageDelta: delta,
		Events:     events,
	})
	if err != nil {
		return nil, err
	}

	if result.Clamped {
		i.logger.Warn("coupon usage already at zero, decrement clamped",
			zap.String("booking_id", booking.ID()),
			zap.String("coupon_id", booking.CouponID()),
			zap.String("from", string(from)),
			zap.String("to", string(next)),
		)
	}

	i.logger.Info("booking status updated",
		zap.String("booking_id", booking.ID()),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
		zap.Int("usage_delta", delta),
	)
	return &Result{Booking: booking, UsageDelta: delta}, nil
}
