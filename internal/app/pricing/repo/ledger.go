package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/contracts"
	"github.com/light-bringer/cleanbook-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/cleanbook-pricing/internal/models/m_coupon"
)

// incrementUsageTx adds one use inside txn. The conditional update is the only
// guard against exceeding the limit, so concurrent callers are serialized by Spanner.
func incrementUsageTx(ctx context.Context, txn *spanner.ReadWriteTransaction, model *m_coupon.Model, couponID string) error {
	n, err := txn.Update(ctx, model.IncrementUsageStmt(couponID))
	if err != nil {
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}
	if n > 0 {
		return nil
	}

	if err := couponExistsTx(ctx, txn, couponID); err != nil {
		return err
	}
	return fmt.Errorf("%w: coupon %s", domain.ErrUsageLimitExceeded, couponID)
}

// decrementUsageTx removes one use inside txn. A count already at zero is reported, not failed.
func decrementUsageTx(ctx context.Context, txn *spanner.ReadWriteTransaction, model *m_coupon.Model, couponID string) (contracts.LedgerResult, error) {
	n, err := txn.Update(ctx, model.DecrementUsageStmt(couponID))
	if err != nil {
		return contracts.LedgerResult{}, fmt.Errorf("failed to decrement coupon usage: %w", err)
	}
	if n > 0 {
		return contracts.LedgerResult{}, nil
	}

	if err := couponExistsTx(ctx, txn, couponID); err != nil {
		return contracts.LedgerResult{}, err
	}
	return contracts.LedgerResult{Clamped: true}, nil
}

func couponExistsTx(ctx context.Context, txn *spanner.ReadWriteTransaction, couponID string) error {
	_, err := txn.ReadRow(ctx, m_coupon.TableName, spanner.Key{couponID}, []string{m_coupon.CouponID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.NewNotFoundError("coupon", couponID, domain.ErrCouponNotFound)
		}
		return fmt.Errorf("failed to read coupon: %w", err)
	}
	return nil
}
