package specialperiods

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts/mocks"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/cache"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/config"
)

func storedCalendar() *domain.SpecialPeriodConfig {
	return &domain.SpecialPeriodConfig{
		Version:           7,
		WeekendSurcharge:  domain.Cents(1500),
		Holidays:          []string{"12-25"},
		HolidaySurcharge:  domain.Cents(2500),
		PeakHours:         []int{8},
		PeakHourSurcharge: domain.Cents(500),
	}
}

func TestProvider_CachesStoredCalendar(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSpecialPeriodRepository(ctrl)
	repo.EXPECT().Current(gomock.Any()).Return(storedCalendar(), nil).Times(1)

	p := NewProvider(repo, cache.NewMemoryStore(), nil, time.Hour, zap.NewNop())
	ctx := context.Background()

	first, err := p.Current(ctx)
	require.NoError(t, err)
	second, err := p.Current(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(7), second.Version)
	assert.Equal(t, "15.00", second.WeekendSurcharge.String())
	assert.Equal(t, first.Holidays, second.Holidays)
}

func TestProvider_FallsBackWhenNothingStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSpecialPeriodRepository(ctrl)
	repo.EXPECT().Current(gomock.Any()).Return(nil, domain.ErrSpecialPeriodConfigAbsent)

	fallback, err := FromConfig(config.SpecialPeriodsConfig{
		WeekendSurcharge:  "10.00",
		Holidays:          []string{"01-01", "07-04", "12-25", "12-31"},
		HolidaySurcharge:  "20.00",
		PeakHours:         []int{8, 9, 17, 18},
		PeakHourSurcharge: "5.00",
	})
	require.NoError(t, err)

	p := NewProvider(repo, cache.NewMemoryStore(), fallback, time.Hour, zap.NewNop())
	cfg, err := p.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Version)
	assert.Equal(t, "20.00", cfg.HolidaySurcharge.String())
	assert.Equal(t, []int{8, 9, 17, 18}, cfg.PeakHours)
}

func TestProvider_NoFallbackReturnsAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSpecialPeriodRepository(ctrl)
	repo.EXPECT().Current(gomock.Any()).Return(nil, domain.ErrSpecialPeriodConfigAbsent)

	p := NewProvider(repo, cache.NewMemoryStore(), nil, time.Hour, zap.NewNop())
	_, err := p.Current(context.Background())
	assert.ErrorIs(t, err, domain.ErrSpecialPeriodConfigAbsent)
}

func TestProvider_SaveInvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSpecialPeriodRepository(ctrl)

	next := storedCalendar()
	next.Version = 8

	gomock.InOrder(
		repo.EXPECT().Current(gomock.Any()).Return(storedCalendar(), nil),
		repo.EXPECT().Save(gomock.Any(), next).Return(nil),
		repo.EXPECT().Current(gomock.Any()).Return(next, nil),
	)

	p := NewProvider(repo, cache.NewMemoryStore(), nil, time.Hour, zap.NewNop())
	ctx := context.Background()

	cfg, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Version)

	require.NoError(t, p.Save(ctx, next))

	cfg, err = p.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), cfg.Version)
}

func TestProvider_RepositoryErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSpecialPeriodRepository(ctrl)
	boom := errors.New("spanner unavailable")
	repo.EXPECT().Current(gomock.Any()).Return(nil, boom)

	p := NewProvider(repo, cache.NewMemoryStore(), storedCalendar(), time.Hour, zap.NewNop())
	_, err := p.Current(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFromConfig_RejectsBadValues(t *testing.T) {
	_, err := FromConfig(config.SpecialPeriodsConfig{WeekendSurcharge: "ten"})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = FromConfig(config.SpecialPeriodsConfig{Holidays: []string{"25-12"}})
	assert.Error(t, err)

	_, err = FromConfig(config.SpecialPeriodsConfig{PeakHours: []int{24}})
	assert.Error(t, err)
}
