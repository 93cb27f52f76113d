package validate_coupon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts/mocks"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/clock"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestExecute(t *testing.T) {
	limit := int64(5)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name         string
		coupon       *domain.Coupon
		base         string
		wantValid    bool
		wantReason   domain.CouponReason
		wantDiscount string
	}{
		{
			name: "percentage capped",
			coupon: &domain.Coupon{ID: "c", Code: "X", DiscountType: domain.DiscountTypePercentage,
				DiscountValue: domain.Cents(2000), MaxDiscountAmount: domain.Cents(1500), Active: true},
			base:         "200.00",
			wantValid:    true,
			wantReason:   domain.CouponOK,
			wantDiscount: "15.00",
		},
		{
			name: "exhausted",
			coupon: &domain.Coupon{ID: "c", Code: "X", DiscountType: domain.DiscountTypeFixed,
				DiscountValue: domain.Cents(1000), MinOrderAmount: domain.Cents(5000), UsageLimit: &limit, UsageCount: 5, Active: true},
			base:         "100",
			wantReason:   domain.CouponUsageLimitReached,
			wantDiscount: "0.00",
		},
		{
			name: "below minimum order",
			coupon: &domain.Coupon{ID: "c", Code: "X", DiscountType: domain.DiscountTypeFixed,
				DiscountValue: domain.Cents(1000), MinOrderAmount: domain.Cents(5000), Active: true},
			base:         "49.99",
			wantReason:   domain.CouponMinOrderNotMet,
			wantDiscount: "0.00",
		},
		{
			name: "not started",
			coupon: &domain.Coupon{ID: "c", Code: "X", DiscountType: domain.DiscountTypeFixed,
				DiscountValue: domain.Cents(1000), ValidFrom: &future, Active: true},
			base:         "100",
			wantReason:   domain.CouponNotStarted,
			wantDiscount: "0.00",
		},
		{
			name: "expired",
			coupon: &domain.Coupon{ID: "c", Code: "X", DiscountType: domain.DiscountTypeFixed,
				DiscountValue: domain.Cents(1000), ValidUntil: &past, Active: true},
			base:         "100",
			wantReason:   domain.CouponExpired,
			wantDiscount: "0.00",
		},
		{
			name: "other category",
			coupon: &domain.Coupon{ID: "c", Code: "X", DiscountType: domain.DiscountTypeFixed,
				DiscountValue: domain.Cents(1000), ApplicableCategoryIDs: []string{"cat-commercial"}, Active: true},
			base:         "100",
			wantReason:   domain.CouponNotApplicable,
			wantDiscount: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalog := mocks.NewMockCatalogRepository(ctrl)
			coupons := mocks.NewMockCouponRepository(ctrl)
			coupons.EXPECT().GetByCode(gomock.Any(), "X").Return(tt.coupon, nil)
			catalog.EXPECT().GetService(gomock.Any(), "svc-home").
				Return(&domain.Service{ID: "svc-home", CategoryID: "cat-residential"}, nil)

			res, err := NewQuery(catalog, coupons, clock.NewMockClock(now)).Execute(context.Background(), &Request{
				Code: "X", ServiceID: "svc-home", BaseAmount: tt.base,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.Equal(t, tt.wantDiscount, res.Discount.String())
		})
	}
}

func TestExecute_UnknownCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	coupons := mocks.NewMockCouponRepository(ctrl)
	coupons.EXPECT().GetByCode(gomock.Any(), "GHOST").
		Return(nil, domain.NewNotFoundError("coupon", "GHOST", domain.ErrCouponNotFound))

	res, err := NewQuery(mocks.NewMockCatalogRepository(ctrl), coupons, clock.NewMockClock(now)).
		Execute(context.Background(), &Request{Code: "GHOST", ServiceID: "svc-home", BaseAmount: "10"})
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, domain.CouponNotFound, res.Reason)
	assert.True(t, res.Discount.IsZero())
}

func TestExecute_BadAmount(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := NewQuery(mocks.NewMockCatalogRepository(ctrl), mocks.NewMockCouponRepository(ctrl), clock.NewMockClock(now)).
		Execute(context.Background(), &Request{Code: "X", ServiceID: "svc-home", BaseAmount: "-5"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "base_amount", ve.Field)
}
