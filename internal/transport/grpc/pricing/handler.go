package pricing

import (
	"context"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/queries/get_booking"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/queries/validate_coupon"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/calculate_pricing"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/create_booking"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/recalculate_usage"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/update_booking_status"
)

// Handler implements PricingServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	// Commands
	calculatePricing    *calculate_pricing.Interactor
	createBooking       *create_booking.Interactor
	updateBookingStatus *update_booking_status.Interactor
	recalculateUsage    *recalculate_usage.Interactor

	// Queries
	validateCoupon *validate_coupon.Query
	getBooking     *get_booking.Query
}

var _ PricingServiceServer = (*Handler)(nil)

// NewHandler creates a new gRPC pricing handler.
func NewHandler(
	calculatePricing *calculate_pricing.Interactor,
	createBooking *create_booking.Interactor,
	updateBookingStatus *update_booking_status.Interactor,
	recalculateUsage *recalculate_usage.Interactor,
	validateCoupon *validate_coupon.Query,
	getBooking *get_booking.Query,
) *Handler {
	return &Handler{
		calculatePricing:    calculatePricing,
		createBooking:       createBooking,
		updateBookingStatus: updateBookingStatus,
		recalculateUsage:    recalculateUsage,
		validateCoupon:      validateCoupon,
		getBooking:          getBooking,
	}
}

// CalculatePricing prices a booking request without persisting anything.
func (h *Handler) CalculatePricing(ctx context.Context, req *CalculatePricingRequest) (*CalculatePricingReply, error) {
	breakdown, err := h.calculatePricing.Execute(ctx, wireToPricingRequest(req))
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &CalculatePricingReply{Pricing: breakdownToWire(breakdown)}, nil
}

// ValidateCoupon reports whether a coupon would apply, without consuming it.
func (h *Handler) ValidateCoupon(ctx context.Context, req *ValidateCouponRequest) (*ValidateCouponReply, error) {
	result, err := h.validateCoupon.Execute(ctx, &validate_coupon.Request{
		Code:       req.Code,
		ServiceID:  req.ServiceID,
		BaseAmount: req.BaseAmount,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &ValidateCouponReply{
		Valid:    result.Valid,
		Discount: moneyToWire(result.Discount),
		Reason:   string(result.Reason),
	}, nil
}

// CreateBooking prices and stores a pending booking.
func (h *Handler) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*CreateBookingReply, error) {
	booking, err := h.createBooking.Execute(ctx, wireToPricingRequest(req))
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &CreateBookingReply{Booking: bookingToWire(booking)}, nil
}

// UpdateBookingStatus moves a booking to a new status and adjusts coupon usage.
func (h *Handler) UpdateBookingStatus(ctx context.Context, req *UpdateBookingStatusRequest) (*UpdateBookingStatusReply, error) {
	result, err := h.updateBookingStatus.Execute(ctx, &update_booking_status.Request{
		BookingID: req.BookingID,
		Status:    req.Status,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &UpdateBookingStatusReply{
		Booking:    bookingToWire(result.Booking),
		UsageDelta: result.UsageDelta,
	}, nil
}

// GetBooking returns a stored booking.
func (h *Handler) GetBooking(ctx context.Context, req *GetBookingRequest) (*GetBookingReply, error) {
	booking, err := h.getBooking.Execute(ctx, &get_booking.Request{BookingID: req.BookingID})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &GetBookingReply{Booking: bookingToWire(booking)}, nil
}

// RecalculateCouponUsage rebuilds usage counts from bookings.
func (h *Handler) RecalculateCouponUsage(ctx context.Context, req *RecalculateCouponUsageRequest) (*RecalculateCouponUsageReply, error) {
	report, err := h.recalculateUsage.Execute(ctx, &recalculate_usage.Request{CouponID: req.CouponID})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &RecalculateCouponUsageReply{
		Checked: report.Checked,
		Drifted: recountsToWire(report.Drifted),
	}, nil
}
