// Package sqlitetest opens throwaway SQLite-backed engines for tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell/config"
)

// NewEngine creates an engine on a fresh database file in the test's temp dir, with the schema in place.
// The database is closed when the test ends.
func NewEngine(t testing.TB, options ...sqlengine.Option) *sqlengine.Engine {
	t.Helper()

	ctx := context.Background()

	db, err := config.OpenSQLiteDB(ctx, filepath.Join(t.TempDir(), "circulation.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	options = append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite)}, options...)
	engine, err := sqlengine.NewEngineFromSQLDB(db, options...)
	require.NoError(t, err)
	require.NoError(t, engine.EnsureSchema(ctx))

	return engine
}

// NewSQLXEngine is like NewEngine but goes through the sqlx adapter.
func NewSQLXEngine(t testing.TB, options ...sqlengine.Option) *sqlengine.Engine {
	t.Helper()

	ctx := context.Background()

	db, err := config.OpenSQLiteSQLX(ctx, filepath.Join(t.TempDir(), "circulation.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	engine, err := sqlengine.NewEngineFromSQLX(db, options...)
	require.NoError(t, err)
	require.NoError(t, engine.EnsureSchema(ctx))

	return engine
}
