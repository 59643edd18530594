package sqlengine

import (
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

// Dialect names the SQL flavor the engine speaks.
type Dialect string

const (
	// DialectPostgres targets PostgreSQL via pgx, lib/pq or sqlx.
	DialectPostgres Dialect = "postgres"

	// DialectSQLite targets modernc.org/sqlite via database/sql or sqlx.
	DialectSQLite Dialect = "sqlite"
)

const (
	goquDialectPostgres = "postgres"
	goquDialectSQLite   = "sqlite3-circulation"

	// Fixed-width UTC timestamps keep text comparison and ordering correct in SQLite.
	sqliteTimeFormat = "2006-01-02T15:04:05.000000Z07:00"

	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

func init() {
	opts := sqlite3.DialectOptions()
	opts.TimeFormat = sqliteTimeFormat
	opts.SupportsReturn = true
	goqu.RegisterDialect(goquDialectSQLite, opts)
}

// dialectSettings bundles the per-backend differences the engine has to care about.
type dialectSettings struct {
	name          Dialect
	builder       goqu.DialectWrapper
	rowLocks      bool
	serializable  bool
	schemaDDL     []string
	isConflictErr func(err error) bool
}

func settingsFor(d Dialect) (dialectSettings, error) {
	switch d {
	case DialectPostgres:
		return dialectSettings{
			name:          DialectPostgres,
			builder:       goqu.Dialect(goquDialectPostgres),
			rowLocks:      true,
			serializable:  true,
			schemaDDL:     postgresSchema,
			isConflictErr: isPostgresConflict,
		}, nil

	case DialectSQLite:
		return dialectSettings{
			name:          DialectSQLite,
			builder:       goqu.Dialect(goquDialectSQLite),
			rowLocks:      false,
			serializable:  false,
			schemaDDL:     sqliteSchema,
			isConflictErr: isSQLiteConflict,
		}, nil

	default:
		return dialectSettings{}, errors.Join(ledger.ErrUnsupportedDialect, errors.New(string(d)))
	}
}

// dialectFromDriverName maps a database/sql driver name to a Dialect.
func dialectFromDriverName(driverName string) (Dialect, error) {
	switch strings.ToLower(driverName) {
	case "postgres", "pgx", "pgx/v5":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return "", errors.Join(ledger.ErrUnsupportedDialect, errors.New(driverName))
	}
}

// isPostgresConflict detects serialization failures and deadlocks reported by either pgx or lib/pq.
func isPostgresConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlStateSerializationFailure || string(pqErr.Code) == sqlStateDeadlockDetected
	}

	return false
}

// isSQLiteConflict detects SQLITE_BUSY and SQLITE_LOCKED, including their extended codes.
func isSQLiteConflict(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		primary := sqliteErr.Code() & 0xff
		return primary == sqlitelib.SQLITE_BUSY || primary == sqlitelib.SQLITE_LOCKED
	}

	return strings.Contains(err.Error(), "database is locked")
}
