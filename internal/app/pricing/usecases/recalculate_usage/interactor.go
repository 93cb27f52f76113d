package recalculate_usage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/pkg/clock"
)

// Request selects the coupon to recount. An empty CouponID recounts every coupon.
type Request struct {
	CouponID string `json:"coupon_id,omitempty"`
}

// Report summarizes a recount run.
type Report struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Checked     int                      `json:"checked"`
	Drifted     []contracts.UsageRecount `json:"drifted"`
}

// Interactor handles the recalculate coupon usage use case.
type Interactor struct {
	coupons contracts.CouponRepository
	ledger  contracts.UsageLedger
	clock   clock.Clock
	logger  *zap.Logger
}

// NewInteractor creates a new recalculate usage interactor.
func NewInteractor(coupons contracts.CouponRepository, ledger contracts.UsageLedger, clock clock.Clock, logger *zap.Logger) *Interactor {
	return &Interactor{
		coupons: coupons,
		ledger:  ledger,
		clock:   clock,
		logger:  logger,
	}
}

// Execute rebuilds usage counts from bookings. Each coupon is recounted in its own
// transaction; the first failure stops the run.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Report, error) {
	ids := []string{req.CouponID}
	if req.CouponID == "" {
		var err error
		if ids, err = i.coupons.ListIDs(ctx); err != nil {
			return nil, fmt.Errorf("failed to list coupons: %w", err)
		}
	}

	report := &Report{GeneratedAt: i.clock.Now(), Drifted: []contracts.UsageRecount{}}
	for _, id := range ids {
		recount, err := i.ledger.RecalculateUsageCount(ctx, id)
		if err != nil {
			return nil, err
		}
		report.Checked++
		if recount.Drifted() {
			i.logger.Warn("coupon usage count drifted",
				zap.String("coupon_id", id),
				zap.Int64("stored", recount.Previous),
				zap.Int64("actual", recount.Current),
			)
			report.Drifted = append(report.Drifted, recount)
		}
	}

	i.logger.Info("coupon usage recalculated",
		zap.Int("checked", report.Checked),
		zap.Int("drifted", len(report.Drifted)),
	)
	return report, nil
}
