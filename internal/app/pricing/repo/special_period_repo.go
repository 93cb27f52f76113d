package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_pricing_config"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/committer"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/query"
)

// SpecialPeriodRepo stores surcharge calendars as JSON documents in pricing_configs.
type SpecialPeriodRepo struct {
	client    *spanner.Client
	committer *committer.Committer
}

// NewSpecialPeriodRepo creates a new SpecialPeriodRepo.
func NewSpecialPeriodRepo(client *spanner.Client) contracts.SpecialPeriodRepository {
	return &SpecialPeriodRepo{client: client, committer: committer.NewCommitter(client)}
}

// Current returns the highest stored version.
func (r *SpecialPeriodRepo) Current(ctx context.Context) (*domain.SpecialPeriodConfig, error) {
	stmt := query.From(m_pricing_config.TableName).
		Select(m_pricing_config.Version, "TO_JSON_STRING("+m_pricing_config.Payload+")").
		Where(query.Eq(m_pricing_config.ConfigKey, m_pricing_config.KeySpecialPeriods)).
		OrderBy(m_pricing_config.Version, query.Desc).
		Limit(1).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrSpecialPeriodConfigAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read special periods: %w", err)
	}

	var version int64
	var payload string
	if err := row.Columns(&version, &payload); err != nil {
		return nil, fmt.Errorf("failed to scan special periods: %w", err)
	}
	return decodeSpecialPeriods(version, payload)
}

// Save stores cfg under its version. Versions are immutable once written.
func (r *SpecialPeriodRepo) Save(ctx context.Context, cfg *domain.SpecialPeriodConfig) error {
	if err := cfg.Validate(); err != nil {
		return domain.NewValidationError("special_periods", err.Error())
	}

	plan := committer.NewPlan()
	plan.Add(m_pricing_config.InsertMut(m_pricing_config.KeySpecialPeriods, cfg.Version, cfg))
	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to save special periods v%d: %w", cfg.Version, err)
	}
	return nil
}

func decodeSpecialPeriods(version int64, payload string) (*domain.SpecialPeriodConfig, error) {
	var cfg domain.SpecialPeriodConfig
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode special periods v%d: %w", version, err)
	}
	cfg.Version = version
	return &cfg, nil
}
