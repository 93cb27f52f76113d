package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

// CatalogRepo implements CatalogRepository for PostgreSQL.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(pool *pgxpool.Pool) contracts.CatalogRepository {
	return &CatalogRepo{pool: pool}
}

const selectServiceSQL = `
	SELECT service_id, name, category_id
	FROM services
	WHERE service_id = $1 AND is_active`

const selectServiceOptionsSQL = `
	SELECT option_id, label, unit_price::text, is_variable, min_qty, max_qty
	FROM service_options
	WHERE service_id = $1 AND is_active
	ORDER BY option_id`

// GetService reads the service row and its active options.
func (r *CatalogRepo) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	svc := &domain.Service{}
	err := r.pool.QueryRow(ctx, selectServiceSQL, serviceID).Scan(&svc.ID, &svc.Name, &svc.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("service", serviceID, domain.ErrServiceNotFound)
		}
		return nil, fmt.Errorf("failed to read service: %w", err)
	}

	rows, err := r.pool.Query(ctx, selectServiceOptionsSQL, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query service options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, label, price string
			variable         bool
			minQty, maxQty   *int64
		)
		if err := rows.Scan(&id, &label, &price, &variable, &minQty, &maxQty); err != nil {
			return nil, fmt.Errorf("failed to scan service option: %w", err)
		}
		unit, err := parseMoney(price)
		if err != nil {
			return nil, err
		}
		opt, err := domain.NewServiceOption(id, serviceID, label, unit, variable, minQty, maxQty)
		if err != nil {
			return nil, fmt.Errorf("stored option %s is invalid: %w", id, err)
		}
		svc.Options = append(svc.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate service options: %w", err)
	}
	return svc, nil
}
