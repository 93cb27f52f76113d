package contracts

import (
	"context"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

//go:generate mockgen -source=catalog_repo.go -destination=mocks/mock_catalog_repo.go -package=mocks

// CatalogRepository loads services together with their active options.
type CatalogRepository interface {
	// GetService returns a NotFoundError wrapping domain.ErrServiceNotFound when the id is unknown.
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
}
