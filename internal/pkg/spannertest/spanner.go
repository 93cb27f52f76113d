// Package spannertest connects integration tests to the Spanner emulator.
package spannertest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
)

// DefaultDatabase is used when SPANNER_TEST_DATABASE is unset. The schema in
// migrations/ must already be applied, e.g. with cmd/migrate.
const DefaultDatabase = "projects/test-project/instances/test-instance/databases/cleanbook-test"

// Child tables come before their parents.
var tables = []string{
	"booking_options",
	"bookings",
	"service_options",
	"services",
	"coupons",
	"pricing_configs",
	"outbox_events",
}

// Setup returns a client on a clean database. The test is skipped when
// SPANNER_EMULATOR_HOST is not set.
func Setup(t *testing.T) *spanner.Client {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set, skipping Spanner integration test")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, Database())
	require.NoError(t, err, "failed to create Spanner client")

	// Clean database before test
	CleanDatabase(t, client)

	t.Cleanup(func() {
		CleanDatabase(t, client)
		client.Close()
	})
	return client
}

// Database returns the test Spanner database name.
func Database() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return DefaultDatabase
}

// CleanDatabase deletes every row for test isolation.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	mutations := make([]*spanner.Mutation, 0, len(tables))
	for _, table := range tables {
		mutations = append(mutations, spanner.Delete(table, spanner.AllKeys()))
	}

	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	}

	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	err = row.Columns(&count)
	require.NoError(t, err, "failed to parse count")

	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
