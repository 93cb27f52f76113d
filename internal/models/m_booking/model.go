package m_booking

import (
	"cloud.google.com/go/spanner"
)

// Model provides typed operations on the bookings table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a booking.
func (m *Model) InsertMut(d *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns(), []interface{}{
		d.BookingID, d.ServiceID, d.CouponID, d.BookingDate, d.Frequency, d.Status,
		&d.BaseAmount, &d.FrequencyDiscount, &d.BulkDiscount, &d.CouponDiscount, &d.SpecialPeriodAdjustment, &d.FinalAmount,
		d.Version, d.CreatedAt, d.UpdatedAt,
	})
}

// UpdateMut creates a mutation updating the given columns of a booking.
func (m *Model) UpdateMut(bookingID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)
	columns = append(columns, BookingID)
	values = append(values, bookingID)
	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}
	return spanner.Update(TableName, columns, values)
}
