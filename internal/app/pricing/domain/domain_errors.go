package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Amount errors
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// Catalog errors
	ErrServiceNotFound = errors.New("service not found")
	ErrOptionNotFound  = errors.New("service option not found")
	ErrInvalidBounds   = errors.New("option min quantity cannot exceed max quantity")

	// Coupon errors
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrUsageLimitExceeded   = errors.New("coupon usage limit exceeded")
	ErrInvalidDiscountType  = errors.New("discount type must be percentage or fixed")
	ErrInvalidDiscountValue = errors.New("discount value is out of range")
	ErrEmptyCouponCode      = errors.New("coupon code cannot be empty")

	// Booking errors
	ErrBookingNotFound           = errors.New("booking not found")
	ErrInvalidStatusTransition   = errors.New("invalid booking status transition")
	ErrConcurrentBookingUpdate   = errors.New("booking was modified concurrently")
	ErrUnknownBookingStatus      = errors.New("unknown booking status")
	ErrSpecialPeriodConfigAbsent = errors.New("special period configuration not found")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
	sentinel error
}

// NewNotFoundError creates a NotFoundError that also matches sentinel via errors.Is.
func NewNotFoundError(resource, id string, sentinel error) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id, sentinel: sentinel}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.sentinel
}

// PricingError wraps any failure raised while computing a price breakdown.
// The original error stays reachable through errors.Is/As.
type PricingError struct {
	Cause error
}

// NewPricingError wraps cause; an existing PricingError is returned as is.
func NewPricingError(cause error) error {
	var pe *PricingError
	if errors.As(cause, &pe) {
		return cause
	}
	return &PricingError{Cause: cause}
}

func (e *PricingError) Error() string {
	return "Error calculating pricing: " + e.Cause.Error()
}

func (e *PricingError) Unwrap() error {
	return e.Cause
}
