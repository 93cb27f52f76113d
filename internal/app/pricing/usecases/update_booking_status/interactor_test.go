package update_booking_status

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts/mocks"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/clock"
)

var created = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func storedBooking(status domain.BookingStatus, couponID string) *domain.Booking {
	amounts := domain.BookingAmounts{
		BaseAmount:              domain.Cents(5000),
		FrequencyDiscount:       domain.Zero(),
		BulkDiscount:            domain.Zero(),
		CouponDiscount:          domain.Cents(500),
		SpecialPeriodAdjustment: domain.Zero(),
		FinalAmount:             domain.Cents(4500),
	}
	return domain.ReconstructBooking("bk-1", "svc-home", couponID, created.Add(72*time.Hour),
		domain.FrequencyOneTime, status, amounts, nil, 1, created, created)
}

func newInteractor(t *testing.T) (*Interactor, *mocks.MockBookingRepository, *observer.ObservedLogs) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBookingRepository(ctrl)
	core, logs := observer.New(zap.InfoLevel)
	return NewInteractor(repo, clock.NewMockClock(created.Add(time.Hour)), zap.New(core)), repo, logs
}

func TestExecute_ConfirmIncrementsUsage(t *testing.T) {
	sut, repo, _ := newInteractor(t)
	repo.EXPECT().GetByID(gomock.Any(), "bk-1").Return(storedBooking(domain.BookingPending, "c-1"), nil)
	repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *contracts.Transition) (contracts.LedgerResult, error) {
			assert.Equal(t, domain.BookingPending, tr.From)
			assert.Equal(t, 1, tr.UsageDelta)
			assert.Equal(t, domain.BookingConfirmed, tr.Booking.Status())
			require.Len(t, tr.Events, 1)
			assert.Equal(t, "booking.status_changed", tr.Events[0].EventType)
			return contracts.LedgerResult{}, nil
		})

	res, err := sut.Execute(context.Background(), &Request{BookingID: "bk-1", Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.UsageDelta)
	assert.Equal(t, domain.BookingConfirmed, res.Booking.Status())
}

func TestExecute_UsageLimitAbortsTransition(t *testing.T) {
	sut, repo, _ := newInteractor(t)
	repo.EXPECT().GetByID(gomock.Any(), "bk-1").Return(storedBooking(domain.BookingPending, "c-1"), nil)
	repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any()).
		Return(contracts.LedgerResult{}, domain.ErrUsageLimitExceeded)

	_, err := sut.Execute(context.Background(), &Request{BookingID: "bk-1", Status: "confirmed"})
	assert.ErrorIs(t, err, domain.ErrUsageLimitExceeded)
}

func TestExecute_ConcurrentConfirmationsAtLimit(t *testing.T) {
	sut, repo, _ := newInteractor(t)

	// The ledger has one use left; storage serializes the two increments.
	var mu sync.Mutex
	remaining := 1
	repo.EXPECT().GetByID(gomock.Any(), "bk-1").
		DoAndReturn(func(context.Context, string) (*domain.Booking, error) {
			return storedBooking(domain.BookingPending, "c-1"), nil
		}).Times(2)
	repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *contracts.Transition) (contracts.LedgerResult, error) {
			mu.Lock()
			defer mu.Unlock()
			if tr.UsageDelta > 0 && remaining == 0 {
				return contracts.LedgerResult{}, domain.ErrUsageLimitExceeded
			}
			remaining -= tr.UsageDelta
			return contracts.LedgerResult{}, nil
		}).Times(2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = sut.Execute(context.Background(), &Request{BookingID: "bk-1", Status: "confirmed"})
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
	assert.Equal(t, 0, remaining)
}

func TestExecute_ClampIsLogged(t *testing.T) {
	sut, repo, logs := newInteractor(t)
	repo.EXPECT().GetByID(gomock.Any(), "bk-1").Return(storedBooking(domain.BookingConfirmed, "c-1"), nil)
	repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *contracts.Transition) (contracts.LedgerResult, error) {
			assert.Equal(t, -1, tr.UsageDelta)
			return contracts.LedgerResult{Clamped: true}, nil
		})

	res, err := sut.Execute(context.Background(), &Request{BookingID: "bk-1", Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, -1, res.UsageDelta)

	warnings := logs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "c-1", warnings[0].ContextMap()["coupon_id"])
}

func TestExecute_NoCouponMeansNoDelta(t *testing.T) {
	sut, repo, _ := newInteractor(t)
	repo.EXPECT().GetByID(gomock.Any(), "bk-1").Return(storedBooking(domain.BookingPending, ""), nil)
	repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *contracts.Transition) (contracts.LedgerResult, error) {
			assert.Zero(t, tr.UsageDelta)
			return contracts.LedgerResult{}, nil
		})

	res, err := sut.Execute(context.Background(), &Request{BookingID: "bk-1", Status: "confirmed"})
	require.NoError(t, err)
	assert.Zero(t, res.UsageDelta)
}

func TestExecute_Rejections(t *testing.T) {
	t.Run("invalid transition never reaches storage", func(t *testing.T) {
		sut, repo, _ := newInteractor(t)
		repo.EXPECT().GetByID(gomock.Any(), "bk-1").Return(storedBooking(domain.BookingCancelled, "c-1"), nil)

		_, err := sut.Execute(context.Background(), &Request{BookingID: "bk-1", Status: "confirmed"})
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		sut, _, _ := newInteractor(t)

		_, err := sut.Execute(context.Background(), &Request{BookingID: "bk-1", Status: "archived"})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "status", ve.Field)
	})

	t.Run("concurrent update surfaces", func(t *testing.T) {
		sut, repo, _ := newInteractor(t)
		repo.EXPECT().GetByID(gomock.Any(), "bk-1").Return(storedBooking(domain.BookingPending, "c-1"), nil)
		repo.EXPECT().ApplyTransition(gomock.Any(), gomock.Any()).
			Return(contracts.LedgerResult{}, domain.ErrConcurrentBookingUpdate)

		_, err := sut.Execute(context.Background(), &Request{BookingID: "bk-1", Status: "confirmed"})
		assert.ErrorIs(t, err, domain.ErrConcurrentBookingUpdate)
	})
}
