package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_service"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_service_option"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/query"
)

// CatalogRepo implements CatalogRepository for Spanner.
type CatalogRepo struct {
	client *spanner.Client
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(client *spanner.Client) contracts.CatalogRepository {
	return &CatalogRepo{client: client}
}

// GetService reads the service row and its active options from a single snapshot.
func (r *CatalogRepo) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_service.TableName, spanner.Key{serviceID}, m_service.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NewNotFoundError("service", serviceID, domain.ErrServiceNotFound)
		}
		return nil, fmt.Errorf("failed to read service: %w", err)
	}

	var data m_service.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse service: %w", err)
	}
	if !data.IsActive {
		return nil, domain.NewNotFoundError("service", serviceID, domain.ErrServiceNotFound)
	}

	stmt := query.From(m_service_option.TableName).
		Select(m_service_option.Columns()...).
		Where(query.Eq(m_service_option.ServiceID, serviceID)).
		Where(query.Eq(m_service_option.IsActive, true)).
		OrderBy(m_service_option.OptionID, query.Asc).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	service := &domain.Service{
		ID:         data.ServiceID,
		Name:       data.Name,
		CategoryID: data.CategoryID,
	}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate service options: %w", err)
		}

		var od m_service_option.Data
		if err := row.ToStruct(&od); err != nil {
			return nil, fmt.Errorf("failed to parse service option: %w", err)
		}
		opt, err := optionFromData(&od)
		if err != nil {
			return nil, fmt.Errorf("stored option %s is invalid: %w", od.OptionID, err)
		}
		service.Options = append(service.Options, opt)
	}

	return service, nil
}
