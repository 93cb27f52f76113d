package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("coupons").
		Select("coupon_id", "code", "usage_count").
		Build()

	assert.Equal(t, "SELECT coupon_id, code, usage_count FROM coupons", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("coupons").Build()

	assert.Equal(t, "SELECT * FROM coupons", stmt.SQL)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("service_options").
		Select("option_id", "label").
		Where(Eq("service_id", "svc-1")).
		Where(Eq("is_active", true)).
		Build()

	assert.Equal(t, "SELECT option_id, label FROM service_options WHERE service_id = @p0 AND is_active = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "svc-1",
		"p1": true,
	}, stmt.Params)
}

func TestBuilder_InCondition(t *testing.T) {
	stmt := From("bookings").
		Count().
		Where(Eq("coupon_id", "c-1")).
		Where(In("status", []string{"confirmed", "completed"})).
		Build()

	assert.Equal(t, "SELECT COUNT(*) FROM bookings WHERE coupon_id = @p0 AND status IN UNNEST(@p1)", stmt.SQL)
	assert.Equal(t, []string{"confirmed", "completed"}, stmt.Params["p1"])
}

func TestBuilder_OrderAndLimit(t *testing.T) {
	stmt := From("outbox_events").
		Select("event_id").
		Where(Eq("status", "pending")).
		OrderBy("created_at", Asc).
		Limit(50).
		Build()

	assert.Equal(t, "SELECT event_id FROM outbox_events WHERE status = @p0 ORDER BY created_at ASC LIMIT @limit", stmt.SQL)
	assert.Equal(t, int64(50), stmt.Params["limit"])
}

func TestBuilder_OrderDesc(t *testing.T) {
	stmt := From("pricing_configs").
		Select("payload").
		OrderBy("version", Desc).
		Limit(1).
		Build()

	assert.Equal(t, "SELECT payload FROM pricing_configs ORDER BY version DESC LIMIT @limit", stmt.SQL)
}

func TestBuilder_CountDropsOrderingAndLimit(t *testing.T) {
	base := From("bookings").
		Select("booking_id").
		Where(Eq("status", "confirmed")).
		OrderBy("created_at", Desc).
		Limit(10)

	stmt := base.Count().Build()

	assert.Equal(t, "SELECT COUNT(*) FROM bookings WHERE status = @p0", stmt.SQL)
	assert.NotContains(t, stmt.Params, "limit")
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("coupons").Select("coupon_id")
	filtered := base.Where(Eq("is_active", true))

	assert.Equal(t, "SELECT coupon_id FROM coupons", base.Build().SQL)
	assert.Equal(t, "SELECT coupon_id FROM coupons WHERE is_active = @p0", filtered.Build().SQL)
}

func TestConditions(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
		index     int
		wantSQL   string
		wantLen   int
	}{
		{name: "eq", condition: Eq("code", "SAVE10"), index: 2, wantSQL: "code = @p2", wantLen: 1},
		{name: "lt", condition: Lt("processed_at", "t"), index: 0, wantSQL: "processed_at < @p0", wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := tt.condition.SQL(tt.index)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Len(t, params, tt.wantLen)
		})
	}
}
