package calculate_pricing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/validation"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/clock"
)

// SelectedOption is one option in a pricing request.
type SelectedOption struct {
	OptionID string `json:"option_id" validate:"required"`
	Quantity *int64 `json:"quantity,omitempty"`
}

// Request contains the data to price a booking.
type Request struct {
	ServiceID       string           `json:"service_id" validate:"required"`
	BookingDate     string           `json:"booking_date" validate:"required"`
	SelectedOptions []SelectedOption `json:"selected_options" validate:"required,min=1,dive"`
	Frequency       string           `json:"frequency,omitempty"`
	CouponCode      string           `json:"coupon_code,omitempty"`
}

// Selections converts the request options to domain selections.
func (r *Request) Selections() []domain.Selection {
	out := make([]domain.Selection, 0, len(r.SelectedOptions))
	for _, o := range r.SelectedOptions {
		out = append(out, domain.Selection{OptionID: o.OptionID, Quantity: o.Quantity})
	}
	return out
}

// Quote is a priced request together with the parsed inputs it was priced from.
type Quote struct {
	Service     *domain.Service
	BookingDate time.Time
	Frequency   domain.Frequency
	Breakdown   *domain.PriceBreakdown
}

// Interactor handles the calculate pricing use case.
type Interactor struct {
	catalog    contracts.CatalogRepository
	coupons    contracts.CouponRepository
	periods    contracts.SpecialPeriodRepository
	calculator *domain.PricingCalculator
	location   *time.Location
	clock      clock.Clock
}

// NewInteractor creates a new calculate pricing interactor. Booking dates without an
// offset are read in location.
func NewInteractor(
	catalog contracts.CatalogRepository,
	coupons contracts.CouponRepository,
	periods contracts.SpecialPeriodRepository,
	calculator *domain.PricingCalculator,
	location *time.Location,
	clock clock.Clock,
) *Interactor {
	if location == nil {
		location = time.UTC
	}
	return &Interactor{
		catalog:    catalog,
		coupons:    coupons,
		periods:    periods,
		calculator: calculator,
		location:   location,
		clock:      clock,
	}
}

// WithLinePricer returns a copy of the interactor that prices line items with lp.
func (i *Interactor) WithLinePricer(lp domain.LinePricer) *Interactor {
	cp := *i
	cp.calculator = i.calculator.WithLinePricer(lp)
	return &cp
}

// Execute prices the request. Every failure is returned as a PricingError.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.PriceBreakdown, error) {
	quote, err := i.Quote(ctx, req)
	if err != nil {
		return nil, domain.NewPricingError(err)
	}
	return quote.Breakdown, nil
}

// Quote prices the request and returns unwrapped errors.
func (i *Interactor) Quote(ctx context.Context, req *Request) (*Quote, error) {
	if req == nil {
		return nil, domain.NewValidationError("service_id", "is required")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	bookingDate, err := domain.ParseBookingDate(req.BookingDate, i.location)
	if err != nil {
		return nil, err
	}

	service, err := i.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	coupon, err := i.lookupCoupon(ctx, req.CouponCode)
	if err != nil {
		return nil, err
	}

	periods, err := i.periods.Current(ctx)
	if err != nil && !errors.Is(err, domain.ErrSpecialPeriodConfigAbsent) {
		return nil, err
	}

	frequency := domain.Frequency(req.Frequency)
	breakdown, err := i.calculator.Calculate(domain.PricingInput{
		Service:       service,
		Selections:    req.Selections(),
		Frequency:     frequency,
		BookingDate:   bookingDate,
		Coupon:        coupon,
		SpecialPeriod: periods,
		Now:           i.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &Quote{
		Service:     service,
		BookingDate: bookingDate,
		Frequency:   frequency,
		Breakdown:   breakdown,
	}, nil
}

// lookupCoupon returns nil for a blank or unknown code.
func (i *Interactor) lookupCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	coupon, err := i.coupons.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrCouponNotFound) {
		return nil, nil
	}
	return coupon, err
}
