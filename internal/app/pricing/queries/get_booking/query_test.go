package get_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts/mocks"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
)

func TestExecute(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBookingRepository(ctrl)
	q := NewQuery(repo)

	at := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	stored := domain.ReconstructBooking("bk-7", "svc-home", "", at, domain.FrequencyWeekly, domain.BookingCompleted,
		domain.BookingAmounts{FinalAmount: domain.Cents(4134)}, nil, 3, at, at)

	repo.EXPECT().GetByID(gomock.Any(), "bk-7").Return(stored, nil)
	repo.EXPECT().GetByID(gomock.Any(), "bk-404").
		Return(nil, domain.NewNotFoundError("booking", "bk-404", domain.ErrBookingNotFound))

	b, err := q.Execute(context.Background(), &Request{BookingID: "bk-7"})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status())
	assert.Equal(t, int64(3), b.Version())

	_, err = q.Execute(context.Background(), &Request{BookingID: "bk-404"})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	_, err = q.Execute(context.Background(), &Request{})
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}
