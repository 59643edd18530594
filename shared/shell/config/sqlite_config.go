package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

const sqliteDriverName = "sqlite"

// SQLiteBusyTimeout bounds how long a writer waits for the database lock before failing with SQLITE_BUSY.
const SQLiteBusyTimeout = 5 * time.Second

// SQLiteDSN completes a modernc.org/sqlite DSN with the settings the engine relies on:
// IMMEDIATE write transactions, a busy timeout, foreign keys and WAL journaling.
// Parameters already present in dsn are kept, and each default pragma is only added
// when dsn does not set that pragma itself.
func SQLiteDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	base, rawQuery, _ := strings.Cut(dsn, "?")

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", errors.Join(ErrInvalidConfig, fmt.Errorf("sqlite dsn parameters %q: %w", rawQuery, err))
	}

	if query.Get("_txlock") == "" {
		query.Set("_txlock", "immediate")
	}

	for _, pragma := range defaultSQLitePragmas() {
		if !hasPragma(query["_pragma"], pragmaName(pragma)) {
			query.Add("_pragma", pragma)
		}
	}

	return base + "?" + query.Encode(), nil
}

func defaultSQLitePragmas() []string {
	return []string{
		"busy_timeout(" + strconv.FormatInt(SQLiteBusyTimeout.Milliseconds(), 10) + ")",
		"foreign_keys(1)",
		"journal_mode(WAL)",
	}
}

func hasPragma(pragmas []string, name string) bool {
	for _, pragma := range pragmas {
		if pragmaName(pragma) == name {
			return true
		}
	}

	return false
}

// pragmaName turns "Busy_Timeout(100)" or "foreign_keys=1" into "busy_timeout".
func pragmaName(pragma string) string {
	name, _, _ := strings.Cut(pragma, "(")
	name, _, _ = strings.Cut(name, "=")

	return strings.ToLower(strings.TrimSpace(name))
}

// OpenSQLiteDB opens an embedded SQLite database through database/sql.
func OpenSQLiteDB(ctx context.Context, dsn string) (*sql.DB, error) {
	completeDSN, err := SQLiteDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(sqliteDriverName, completeDSN)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ledger.ErrStoreUnavailable, pingErr)
	}

	return db, nil
}

// OpenSQLiteSQLX opens an embedded SQLite database through sqlx.
func OpenSQLiteSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := OpenSQLiteDB(ctx, dsn)
	if err != nil {
		return nil, err
	}

	return sqlx.NewDb(db, sqliteDriverName), nil
}
