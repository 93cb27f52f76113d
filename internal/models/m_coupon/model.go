package m_coupon

import (
	"cloud.google.com/go/spanner"
)

// Model provides typed operations on the coupons table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a coupon.
func (m *Model) InsertMut(d *Data) *spanner.Mutation {
	cols := append(Columns(), CreatedAt, UpdatedAt)
	return spanner.Insert(TableName, cols, []interface{}{
		d.CouponID, d.Code, d.DiscountType, &d.DiscountValue, d.MinOrderAmount, d.MaxDiscountAmount,
		d.UsageLimit, d.UsageCount, d.ValidFrom, d.ValidUntil, d.IsActive,
		d.ApplicableCategoryIDs, d.ApplicableServiceIDs,
		spanner.CommitTimestamp, spanner.CommitTimestamp,
	})
}

// IncrementUsageStmt adds one use unless the limit is already reached.
// Zero affected rows means the coupon is missing or exhausted.
func (m *Model) IncrementUsageStmt(couponID string) spanner.Statement {
	return spanner.Statement{
		SQL: `UPDATE ` + TableName + `
		      SET ` + UsageCount + ` = ` + UsageCount + ` + 1, ` + UpdatedAt + ` = PENDING_COMMIT_TIMESTAMP()
		      WHERE ` + CouponID + ` = @couponID
		        AND (` + UsageLimit + ` IS NULL OR ` + UsageCount + ` < ` + UsageLimit + `)`,
		Params: map[string]interface{}{"couponID": couponID},
	}
}

// DecrementUsageStmt removes one use, never going below zero.
func (m *Model) DecrementUsageStmt(couponID string) spanner.Statement {
	return spanner.Statement{
		SQL: `UPDATE ` + TableName + `
		      SET ` + UsageCount + ` = ` + UsageCount + ` - 1, ` + UpdatedAt + ` = PENDING_COMMIT_TIMESTAMP()
		      WHERE ` + CouponID + ` = @couponID AND ` + UsageCount + ` > 0`,
		Params: map[string]interface{}{"couponID": couponID},
	}
}

// SetUsageMut overwrites the usage count.
func (m *Model) SetUsageMut(couponID string, count int64) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{CouponID, UsageCount, UpdatedAt},
		[]interface{}{couponID, count, spanner.CommitTimestamp},
	)
}
