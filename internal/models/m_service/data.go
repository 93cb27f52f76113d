package m_service

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the services table.
type Data struct {
	ServiceID  string    `spanner:"service_id"`
	Name       string    `spanner:"name"`
	CategoryID string    `spanner:"category_id"`
	IsActive   bool      `spanner:"is_active"`
	CreatedAt  time.Time `spanner:"created_at"`
}

// Columns lists the readable columns in Data order.
func Columns() []string {
	return []string{ServiceID, Name, CategoryID, IsActive, CreatedAt}
}

// InsertMut creates a mutation inserting a service row.
func InsertMut(d *Data) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{ServiceID, Name, CategoryID, IsActive, CreatedAt},
		[]interface{}{d.ServiceID, d.Name, d.CategoryID, d.IsActive, spanner.CommitTimestamp},
	)
}
