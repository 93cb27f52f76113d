package create_booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/calculate_pricing"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/clock"
)

// Request is a pricing request to be turned into a booking.
type Request = calculate_pricing.Request

// Interactor handles the create booking use case.
type Interactor struct {
	pricing  *calculate_pricing.Interactor
	bookings contracts.BookingRepository
	clock    clock.Clock
	newID    func() string
	logger   *zap.Logger
}

// NewInteractor creates a new create booking interactor. Bookings are always priced
// with the strict option policy and enforced quantity bounds.
func NewInteractor(
	pricing *calculate_pricing.Interactor,
	bookings contracts.BookingRepository,
	clock clock.Clock,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		pricing:  pricing.WithLinePricer(domain.LinePricer{Policy: domain.OptionPolicyStrict, EnforceBounds: true}),
		bookings: bookings,
		clock:    clock,
		newID:    func() string { return uuid.New().String() },
		logger:   logger,
	}
}

// Execute prices the request and stores a pending booking with its outbox event.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	quote, err := i.pricing.Quote(ctx, req)
	if err != nil {
		return nil, domain.NewPricingError(err)
	}

	booking, err := domain.NewBooking(
		i.newID(),
		quote.Service.ID,
		quote.BookingDate,
		quote.Frequency,
		quote.Breakdown,
		i.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	events, err := contracts.EnrichEvents(booking.DomainEvents(), i.newID)
	if err != nil {
		return nil, err
	}

	if err := i.bookings.Create(ctx, booking, events); err != nil {
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	i.logger.Info("booking created",
		zap.String("booking_id", booking.ID()),
		zap.String("service_id", booking.ServiceID()),
		zap.String("coupon_id", booking.CouponID()),
		zap.String("final_amount", booking.Amounts().FinalAmount.String()),
	)
	return booking, nil
}
