//go:build integration

package pgrepo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

const schemaFile = "../../../../../migrations/postgres/001_initial_schema.sql"

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("CLEANBOOK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CLEANBOOK_TEST_POSTGRES_DSN not set, skipping Postgres integration test")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile(schemaFile)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE booking_options, bookings, service_options, services, coupons, pricing_configs, outbox_events CASCADE`)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `
		INSERT INTO services (service_id, name, category_id) VALUES ('svc-home', 'Home cleaning', 'cat-residential');
		INSERT INTO service_options (service_id, option_id, label, unit_price, is_variable, min_qty, max_qty)
		VALUES ('svc-home', 'opt-standard', 'Standard clean', 50.00, false, NULL, NULL),
		       ('svc-home', 'opt-room', 'Extra room', 10.00, true, 1, 10)`)
	require.NoError(t, err)
	return pool
}

func insertCoupon(t *testing.T, coupons *CouponRepo, limit, count int64) {
	t.Helper()
	require.NoError(t, coupons.Insert(context.Background(), &domain.Coupon{
		ID:            "c-1",
		Code:          "SPRING10",
		DiscountType:  domain.DiscountTypeFixed,
		DiscountValue: domain.MustParseMoney("5.00"),
		UsageLimit:    &limit,
		UsageCount:    count,
		Active:        true,
	}))
}

func TestCatalogRepo_GetService(t *testing.T) {
	pool := setupPostgres(t)

	svc, err := NewCatalogRepo(pool).GetService(context.Background(), "svc-home")
	require.NoError(t, err)
	require.Len(t, svc.Options, 2)
	assert.Equal(t, "10.00", svc.Options[0].UnitPrice.String())
	require.NotNil(t, svc.Options[0].MaxQty)
	assert.Equal(t, int64(10), *svc.Options[0].MaxQty)

	_, err = NewCatalogRepo(pool).GetService(context.Background(), "svc-missing")
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestCouponRepo_ConcurrentIncrementAtLimit(t *testing.T) {
	pool := setupPostgres(t)
	coupons := NewCouponRepo(pool, zaptest.NewLogger(t))
	insertCoupon(t, coupons, 5, 4)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = coupons.IncrementUsage(context.Background(), "c-1")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrUsageLimitExceeded)
	}
	assert.Equal(t, 1, succeeded)

	c, err := coupons.GetByCode(context.Background(), "SPRING10")
	require.NoError(t, err)
	assert.Equal(t, int64(5), c.UsageCount)
	assert.Equal(t, "5.00", c.DiscountValue.String())
}

func TestCouponRepo_DecrementClampsAndMissing(t *testing.T) {
	pool := setupPostgres(t)
	coupons := NewCouponRepo(pool, zaptest.NewLogger(t))
	insertCoupon(t, coupons, 5, 0)
	ctx := context.Background()

	res, err := coupons.DecrementUsage(ctx, "c-1")
	require.NoError(t, err)
	assert.True(t, res.Clamped)

	err = coupons.IncrementUsage(ctx, "c-missing")
	assert.ErrorIs(t, err, domain.ErrCouponNotFound)

	ids, err := coupons.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c-1"}, ids)
}

func TestBookingRepo_TransitionAndRelay(t *testing.T) {
	pool := setupPostgres(t)
	logger := zaptest.NewLogger(t)
	coupons := NewCouponRepo(pool, logger)
	insertCoupon(t, coupons, 5, 3)
	bookings := NewBookingRepo(pool, logger)
	outbox := NewOutboxRepo(pool, logger)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	breakdown := &domain.PriceBreakdown{
		BaseAmount:              domain.MustParseMoney("50.00"),
		FrequencyDiscount:       domain.Zero(),
		BulkDiscount:            domain.Zero(),
		CouponDiscount:          domain.MustParseMoney("5.00"),
		SpecialPeriodAdjustment: domain.Zero(),
		FinalAmount:             domain.MustParseMoney("45.00"),
		LineItems: []domain.LineItem{
			{OptionID: "opt-standard", Label: "Standard clean", Quantity: 1, Price: domain.MustParseMoney("50.00"), Total: domain.MustParseMoney("50.00")},
		},
		CouponID: "c-1",
	}
	b, err := domain.NewBooking("bk-1", "svc-home", now.Add(48*time.Hour), domain.FrequencyOneTime, breakdown, now)
	require.NoError(t, err)

	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("evt-%d", n)
	}

	events, err := contracts.EnrichEvents(b.DomainEvents(), next)
	require.NoError(t, err)
	require.NoError(t, bookings.Create(ctx, b, events))

	stored, err := bookings.GetByID(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "45.00", stored.Amounts().FinalAmount.String())

	delta, err := stored.Transition(domain.BookingConfirmed, now.Add(time.Hour))
	require.NoError(t, err)
	events, err = contracts.EnrichEvents(stored.DomainEvents(), next)
	require.NoError(t, err)
	_, err = bookings.ApplyTransition(ctx, &contracts.Transition{Booking: stored, From: domain.BookingPending, UsageDelta: delta, Events: events})
	require.NoError(t, err)

	// The stale pending copy is rejected.
	_, err = bookings.ApplyTransition(ctx, &contracts.Transition{Booking: stored, From: domain.BookingPending, UsageDelta: delta})
	assert.ErrorIs(t, err, domain.ErrConcurrentBookingUpdate)

	recount, err := coupons.RecalculateUsageCount(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), recount.Previous)
	assert.Equal(t, int64(1), recount.Current)

	pending, err := outbox.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.NoError(t, outbox.MarkProcessed(ctx, pending[0].EventID))
	require.NoError(t, outbox.MarkFailed(ctx, pending[1].EventID, "queue unavailable"))

	future := time.Now().Add(time.Hour)
	purged, err := outbox.Purge(ctx, future, future)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)
}

func TestSpecialPeriodRepo_Versions(t *testing.T) {
	pool := setupPostgres(t)
	periods := NewSpecialPeriodRepo(pool)
	ctx := context.Background()

	_, err := periods.Current(ctx)
	assert.ErrorIs(t, err, domain.ErrSpecialPeriodConfigAbsent)

	require.NoError(t, periods.Save(ctx, &domain.SpecialPeriodConfig{Version: 3, WeekendSurcharge: domain.MustParseMoney("12.50")}))
	current, err := periods.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), current.Version)
	assert.Equal(t, "12.50", current.WeekendSurcharge.String())
}
