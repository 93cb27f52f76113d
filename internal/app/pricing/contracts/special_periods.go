package contracts

import (
	"context"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

//go:generate mockgen -source=special_periods.go -destination=mocks/mock_special_periods.go -package=mocks

// SpecialPeriodRepository stores versioned surcharge calendars.
type SpecialPeriodRepository interface {
	// Current returns the highest version, or domain.ErrSpecialPeriodConfigAbsent.
	Current(ctx context.Context) (*domain.SpecialPeriodConfig, error)
	// Save stores cfg under cfg.Version.
	Save(ctx context.Context, cfg *domain.SpecialPeriodConfig) error
}
