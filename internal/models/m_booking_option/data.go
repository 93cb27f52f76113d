package m_booking_option

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the booking_options table.
type Data struct {
	BookingID string  `spanner:"booking_id"`
	OptionID  string  `spanner:"option_id"`
	Label     string  `spanner:"label"`
	Quantity  int64   `spanner:"quantity"`
	UnitPrice big.Rat `spanner:"unit_price"`
	Total     big.Rat `spanner:"total"`
}

// Columns lists every column in Data order.
func Columns() []string {
	return []string{BookingID, OptionID, Label, Quantity, UnitPrice, Total}
}

// InsertMut creates a mutation inserting an option row.
func InsertMut(d *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns(), []interface{}{
		d.BookingID, d.OptionID, d.Label, d.Quantity, &d.UnitPrice, &d.Total,
	})
}
