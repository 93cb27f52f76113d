package pricing

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
// A PricingError is classified by its cause but keeps its own message.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		pricingErr    *domain.PricingError
	)

	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.As(err, &notFoundErr):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownBookingStatus):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrUsageLimitExceeded):
		return status.Error(codes.ResourceExhausted, "coupon usage limit exceeded")

	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())

	case errors.Is(err, domain.ErrConcurrentBookingUpdate):
		return status.Error(codes.Aborted, "booking was modified concurrently, retry with fresh state")

	case errors.As(err, &pricingErr):
		// Unclassified cause; the pricing diagnostic is kept.
		return status.Error(codes.Internal, pricingErr.Error())

	default:
		// Unknown error - return Internal
		return status.Error(codes.Internal, "internal server error")
	}
}
