package m_service_option

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the service_options table.
type Data struct {
	ServiceID  string            `spanner:"service_id"`
	OptionID   string            `spanner:"option_id"`
	Label      string            `spanner:"label"`
	UnitPrice  big.Rat           `spanner:"unit_price"`
	IsVariable bool              `spanner:"is_variable"`
	MinQty     spanner.NullInt64 `spanner:"min_qty"`
	MaxQty     spanner.NullInt64 `spanner:"max_qty"`
	IsActive   bool              `spanner:"is_active"`
}

// Columns lists the readable columns in Data order.
func Columns() []string {
	return []string{ServiceID, OptionID, Label, UnitPrice, IsVariable, MinQty, MaxQty, IsActive}
}

// InsertMut creates a mutation inserting an option row.
func InsertMut(d *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns(), []interface{}{
		d.ServiceID, d.OptionID, d.Label, &d.UnitPrice, d.IsVariable, d.MinQty, d.MaxQty, d.IsActive,
	})
}
