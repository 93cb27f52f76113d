// Package specialperiods serves the surcharge calendar to the pricing engine,
// caching the stored version and falling back to configured defaults.
package specialperiods

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/cache"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/config"
)

// CacheKey is where the current calendar is cached.
const CacheKey = "cleanbook:pricing:special_periods:current"

// Provider is a caching SpecialPeriodRepository.
type Provider struct {
	repo     contracts.SpecialPeriodRepository
	cache    cache.Store
	fallback *domain.SpecialPeriodConfig
	ttl      time.Duration
	logger   *zap.Logger
}

var _ contracts.SpecialPeriodRepository = (*Provider)(nil)

// NewProvider wraps repo. fallback is served while no calendar is stored.
func NewProvider(repo contracts.SpecialPeriodRepository, store cache.Store, fallback *domain.SpecialPeriodConfig, ttl time.Duration, logger *zap.Logger) *Provider {
	return &Provider{
		repo:     repo,
		cache:    store,
		fallback: fallback,
		ttl:      ttl,
		logger:   logger,
	}
}

// Current returns the cached calendar, loading it on a miss. Cache failures
// degrade to a direct read.
func (p *Provider) Current(ctx context.Context) (*domain.SpecialPeriodConfig, error) {
	raw, ok, err := p.cache.Get(ctx, CacheKey)
	switch {
	case err != nil:
		p.logger.Warn("special period cache read failed", zap.Error(err))
	case ok:
		var cfg domain.SpecialPeriodConfig
		if err := json.Unmarshal(raw, &cfg); err == nil {
			return &cfg, nil
		}
		p.logger.Warn("discarding undecodable special period cache entry")
	}

	cfg, err := p.repo.Current(ctx)
	if errors.Is(err, domain.ErrSpecialPeriodConfigAbsent) {
		if p.fallback == nil {
			return nil, err
		}
		cfg = p.fallback
	} else if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(cfg); err == nil {
		if err := p.cache.Set(ctx, CacheKey, raw, p.ttl); err != nil {
			p.logger.Warn("special period cache write failed", zap.Error(err))
		}
	}
	return cfg, nil
}

// Save stores a new version and drops the cached one.
func (p *Provider) Save(ctx context.Context, cfg *domain.SpecialPeriodConfig) error {
	if err := p.repo.Save(ctx, cfg); err != nil {
		return err
	}
	p.logger.Info("special periods updated", zap.Int64("version", cfg.Version))
	return p.Invalidate(ctx)
}

// Invalidate drops the cached calendar so the next read goes to storage.
func (p *Provider) Invalidate(ctx context.Context) error {
	if err := p.cache.Delete(ctx, CacheKey); err != nil {
		return fmt.Errorf("failed to invalidate special periods: %w", err)
	}
	return nil
}

// FromConfig builds the fallback calendar (version 0) from configuration.
func FromConfig(c config.SpecialPeriodsConfig) (*domain.SpecialPeriodConfig, error) {
	cfg := &domain.SpecialPeriodConfig{
		Holidays:  c.Holidays,
		PeakHours: c.PeakHours,
	}

	var err error
	if cfg.WeekendSurcharge, err = parseSurcharge("weekend_surcharge", c.WeekendSurcharge); err != nil {
		return nil, err
	}
	if cfg.HolidaySurcharge, err = parseSurcharge("holiday_surcharge", c.HolidaySurcharge); err != nil {
		return nil, err
	}
	if cfg.PeakHourSurcharge, err = parseSurcharge("peak_hour_surcharge", c.PeakHourSurcharge); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid special periods: %w", err)
	}
	return cfg, nil
}

func parseSurcharge(name, s string) (*domain.Money, error) {
	if s == "" {
		return domain.Zero(), nil
	}
	m, err := domain.ParseMoney(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return m, nil
}
