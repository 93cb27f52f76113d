package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/queries/get_booking"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/queries/validate_coupon"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/repo"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/repo/pgrepo"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/specialperiods"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/calculate_pricing"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/create_booking"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/recalculate_usage"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/usecases/update_booking_status"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/cache"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/clock"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/config"
	"github.com/light-bringer/cleanbook-pricing/internal/transport/grpc/pricing"
)

// Repositories groups the storage implementations selected by storage.driver.
type Repositories struct {
	Catalog        contracts.CatalogRepository
	Coupons        contracts.CouponRepository
	Ledger         contracts.UsageLedger
	Bookings       contracts.BookingRepository
	Outbox         contracts.OutboxRepository
	SpecialPeriods contracts.SpecialPeriodRepository
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Config *config.Config
	Logger *zap.Logger
	Clock  clock.Clock

	SpannerClient *spanner.Client
	PgPool        *pgxpool.Pool
	Cache         cache.Store

	Repos          Repositories
	SpecialPeriods *specialperiods.Provider

	CalculatePricing *calculate_pricing.Interactor
	RecalculateUsage *recalculate_usage.Interactor
	PricingHandler   *pricing.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	opts := &ServiceOptions{
		Config: cfg,
		Logger: logger,
		Clock:  clock.NewRealClock(),
	}

	// 1. Storage
	if err := opts.openStorage(ctx); err != nil {
		opts.Close()
		return nil, err
	}

	// 2. Special period cache and provider
	if err := opts.openCache(ctx); err != nil {
		opts.Close()
		return nil, err
	}
	fallback, err := specialperiods.FromConfig(cfg.Pricing.SpecialPeriods)
	if err != nil {
		opts.Close()
		return nil, fmt.Errorf("invalid pricing.special_periods: %w", err)
	}
	opts.SpecialPeriods = specialperiods.NewProvider(opts.Repos.SpecialPeriods, opts.Cache, fallback, cfg.Pricing.CacheTTL, logger)

	// 3. Pricing engine
	calculator, err := newCalculator(cfg.Pricing)
	if err != nil {
		opts.Close()
		return nil, err
	}

	// 4. Use cases and queries
	opts.CalculatePricing = calculate_pricing.NewInteractor(
		opts.Repos.Catalog,
		opts.Repos.Coupons,
		opts.SpecialPeriods,
		calculator,
		cfg.Pricing.Location(),
		opts.Clock,
	)
	opts.RecalculateUsage = recalculate_usage.NewInteractor(opts.Repos.Coupons, opts.Repos.Ledger, opts.Clock, logger)
	createBooking := create_booking.NewInteractor(opts.CalculatePricing, opts.Repos.Bookings, opts.Clock, logger)
	updateBookingStatus := update_booking_status.NewInteractor(opts.Repos.Bookings, opts.Clock, logger)
	validateCoupon := validate_coupon.NewQuery(opts.Repos.Catalog, opts.Repos.Coupons, opts.Clock)
	getBooking := get_booking.NewQuery(opts.Repos.Bookings)

	// 5. gRPC handler
	opts.PricingHandler = pricing.NewHandler(
		opts.CalculatePricing,
		createBooking,
		updateBookingStatus,
		opts.RecalculateUsage,
		validateCoupon,
		getBooking,
	)

	return opts, nil
}

func (s *ServiceOptions) openStorage(ctx context.Context) error {
	switch s.Config.Storage.Driver {
	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, s.Config.Spanner.Database)
		if err != nil {
			return fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.SpannerClient = client
		coupons := repo.NewCouponRepo(client)
		s.Repos = Repositories{
			Catalog:        repo.NewCatalogRepo(client),
			Coupons:        coupons,
			Ledger:         coupons,
			Bookings:       repo.NewBookingRepo(client),
			Outbox:         repo.NewOutboxRepo(client),
			SpecialPeriods: repo.NewSpecialPeriodRepo(client),
		}

	case config.DriverPostgres:
		pool, err := pgrepo.NewPool(ctx, s.Config.Postgres.DSN, s.Config.Postgres.MaxConns)
		if err != nil {
			return err
		}
		s.PgPool = pool
		coupons := pgrepo.NewCouponRepo(pool, s.Logger)
		s.Repos = Repositories{
			Catalog:        pgrepo.NewCatalogRepo(pool),
			Coupons:        coupons,
			Ledger:         coupons,
			Bookings:       pgrepo.NewBookingRepo(pool, s.Logger),
			Outbox:         pgrepo.NewOutboxRepo(pool, s.Logger),
			SpecialPeriods: pgrepo.NewSpecialPeriodRepo(pool),
		}

	default:
		return fmt.Errorf("unknown storage driver %q", s.Config.Storage.Driver)
	}

	s.Logger.Info("storage opened", zap.String("driver", s.Config.Storage.Driver))
	return nil
}

func (s *ServiceOptions) openCache(ctx context.Context) error {
	rc := s.Config.Redis
	if rc.Addr == "" {
		s.Cache = cache.NewMemoryStore()
		s.Logger.Info("redis not configured, using in-process special period cache")
		return nil
	}

	store, err := cache.NewRedisStore(ctx, cache.RedisOptions{
		Addr:        rc.Addr,
		Password:    rc.Password,
		DB:          rc.DB,
		DialTimeout: rc.DialTimeout,
	})
	if err != nil {
		return err
	}
	s.Cache = store
	return nil
}

func newCalculator(cfg config.PricingConfig) (*domain.PricingCalculator, error) {
	bulk, err := domain.ParseBulkPolicy(cfg.BulkPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing.bulk_policy: %w", err)
	}
	policy, err := domain.ParseOptionPolicy(cfg.OptionPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing.option_policy: %w", err)
	}
	return domain.NewPricingCalculator(domain.LinePricer{Policy: policy}, bulk), nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if closer, ok := s.Cache.(*cache.RedisStore); ok {
		if err := closer.Close(); err != nil {
			s.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if s.PgPool != nil {
		s.PgPool.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
