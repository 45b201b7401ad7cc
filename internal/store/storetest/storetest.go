// Package storetest opens migrated and seeded SQLite stores for tests.
package storetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/newestbench/internal/schema"
	"github.com/dshills/newestbench/internal/seed"
	"github.com/dshills/newestbench/internal/store"
	"github.com/dshills/newestbench/internal/testutil"
)

// Driver is the database/sql driver used by test stores.
const Driver = "sqlite"

// DSN returns a SQLite DSN for path with foreign keys enforced.
func DSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)"
}

// Migrated creates a fresh database file with the full schema and returns
// its DSN.
func Migrated(t *testing.T) string {
	t.Helper()

	dsn := DSN(testutil.TempFile(t, "newestbench.db"))
	db, err := sql.Open(Driver, dsn)
	require.NoError(t, err)
	require.NoError(t, schema.Up(db, Driver))
	return dsn
}

// Open migrates a fresh database, loads ds and opens a store on it. The
// store is closed when the test finishes. A nil tracer discards traces.
func Open(t *testing.T, ds seed.Dataset, tracer store.Tracer) *store.Store {
	t.Helper()

	s := OpenDSN(t, Migrated(t), tracer)
	_, err := seed.Load(context.Background(), s.DB(), ds, 100)
	require.NoError(t, err)
	return s
}

// OpenDSN opens a store on an existing database.
func OpenDSN(t *testing.T, dsn string, tracer store.Tracer) *store.Store {
	t.Helper()

	s, err := store.Open(context.Background(), store.Config{Driver: Driver, DSN: dsn}, tracer)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
