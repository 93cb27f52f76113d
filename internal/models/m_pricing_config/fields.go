package m_pricing_config

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the pricing_configs table.
const (
	TableName = "pricing_configs"

	ConfigKey = "config_key"
	Version   = "version"
	Payload   = "payload"
	CreatedAt = "created_at"
)

// KeySpecialPeriods identifies the surcharge calendar documents.
const KeySpecialPeriods = "special_periods"

// Data represents a row of the pricing_configs table.
type Data struct {
	ConfigKey string           `spanner:"config_key"`
	Version   int64            `spanner:"version"`
	Payload   spanner.NullJSON `spanner:"payload"`
	CreatedAt time.Time        `spanner:"created_at"`
}

// InsertMut creates a mutation storing a new config version.
func InsertMut(key string, version int64, payload interface{}) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{ConfigKey, Version, Payload, CreatedAt},
		[]interface{}{key, version, spanner.NullJSON{Value: payload, Valid: true}, spanner.CommitTimestamp},
	)
}
