package ledger

import "errors"

// ErrConcurrencyConflict is returned when a transaction lost a serialization race and may be retried.
var ErrConcurrencyConflict = errors.New("concurrency conflict, transaction was not committed")

// ErrStoreUnavailable is returned when a transaction could not be started or completed for a transient reason.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrNilDatabaseConnection is returned when a nil database connection is supplied.
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

// ErrEntityNotFound is returned by lookups for a row that does not exist.
var ErrEntityNotFound = errors.New("entity not found")

// ErrUnsupportedDialect is returned when the SQL dialect is not one of the supported ones.
var ErrUnsupportedDialect = errors.New("unsupported sql dialect")

var (
	// ErrBuildingQueryFailed is returned when a SQL statement could not be generated.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed is returned when executing a read fails.
	ErrQueryingFailed = errors.New("querying failed")

	// ErrScanningRowFailed is returned when a result row could not be scanned.
	ErrScanningRowFailed = errors.New("scanning db row failed")

	// ErrWritingFailed is returned when executing a write fails.
	ErrWritingFailed = errors.New("writing failed")

	// ErrSchemaMigrationFailed is returned when creating tables or indexes fails.
	ErrSchemaMigrationFailed = errors.New("schema migration failed")
)
