package pgrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

const specialPeriodsKey = "special_periods"

// SpecialPeriodRepo stores surcharge calendars as jsonb documents in pricing_configs.
type SpecialPeriodRepo struct {
	pool *pgxpool.Pool
}

// NewSpecialPeriodRepo creates a new SpecialPeriodRepo.
func NewSpecialPeriodRepo(pool *pgxpool.Pool) contracts.SpecialPeriodRepository {
	return &SpecialPeriodRepo{pool: pool}
}

// Current returns the highest stored version.
func (r *SpecialPeriodRepo) Current(ctx context.Context) (*domain.SpecialPeriodConfig, error) {
	var (
		version int64
		payload []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT version, payload::text FROM pricing_configs
		WHERE config_key = $1
		ORDER BY version DESC
		LIMIT 1`, specialPeriodsKey).Scan(&version, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSpecialPeriodConfigAbsent
		}
		return nil, fmt.Errorf("failed to read special periods: %w", err)
	}

	var cfg domain.SpecialPeriodConfig
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode special periods v%d: %w", version, err)
	}
	cfg.Version = version
	return &cfg, nil
}

// Save stores cfg under its version.
func (r *SpecialPeriodRepo) Save(ctx context.Context, cfg *domain.SpecialPeriodConfig) error {
	if err := cfg.Validate(); err != nil {
		return domain.NewValidationError("special_periods", err.Error())
	}
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode special periods: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO pricing_configs (config_key, version, payload, created_at) VALUES ($1, $2, $3::jsonb, now())`,
		specialPeriodsKey, cfg.Version, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save special periods v%d: %w", cfg.Version, err)
	}
	return nil
}
