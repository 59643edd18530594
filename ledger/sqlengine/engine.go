package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine/internal/adapters"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	logMsgBuildQueryFailed      = "failed to build query"
	logMsgDBQueryFailed         = "database query execution failed"
	logMsgCloseRowsFailed       = "failed to close database rows"
	logMsgScanRowFailed         = "failed to scan database row"
	logMsgDBExecFailed          = "database execution failed"
	logMsgBeginFailed           = "transaction begin failed"
	logMsgCommitFailed          = "transaction commit failed"
	logMsgRollbackFailed        = "transaction rollback failed"
	logMsgConcurrencyConflict   = "concurrency conflict detected"
	logMsgAuditWriteFailed      = "audit entry write failed, transaction continues without it"
	logMsgTransactionCommitted  = "transaction committed"
	logMsgSchemaReady           = "schema ready"
	logMsgSchemaMigrationFailed = "schema migration failed"
	logMsgSQLExecuted           = "executed sql for: "
	logMsgOperation             = "sqlengine operation: "
	logAttrError                = "error"
	logAttrQuery                = "query"
	logAttrDurationMS           = "duration_ms"
	logAttrDialect              = "dialect"
	logAttrAction               = "action"
	logAttrAuditAction          = "audit_action"
	logAttrRowsAffected         = "rows_affected"
	savepointAudit              = "audit_entry"
)

// Engine is the relational store behind the circulation desk. It implements
// ledger.Transactor and ledger.Reader on top of PostgreSQL or SQLite.
type Engine struct {
	db               adapters.DBAdapter
	dialect          dialectSettings
	logger           ledger.Logger
	contextualLogger ledger.ContextualLogger
	metricsCollector ledger.MetricsCollector
	tracingCollector ledger.TracingCollector
}

// NewEngineFromPGXPool creates a new Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), DialectPostgres, options...)
}

// NewEngineFromPGXPoolAndReplica creates a new Engine that sends reads to the replica
// when the context asks for eventual consistency. Transactions always use the primary.
func NewEngineFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Engine, error) {
	if primary == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapterWithReplica(primary, replica), DialectPostgres, options...)
}

// NewEngineFromSQLDB creates a new Engine using a database/sql DB.
// The dialect defaults to PostgreSQL; use WithDialect(DialectSQLite) for modernc.org/sqlite.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), DialectPostgres, options...)
}

// NewEngineFromSQLX creates a new Engine using a sqlx DB. The dialect follows the driver name.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, ledger.ErrNilDatabaseConnection
	}

	dialect, err := dialectFromDriverName(db.DriverName())
	if err != nil {
		return nil, err
	}

	return newEngine(adapters.NewSQLXAdapter(db), dialect, options...)
}

func newEngine(db adapters.DBAdapter, dialect Dialect, options ...Option) (*Engine, error) {
	settings, err := settingsFor(dialect)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		db:      db,
		dialect: settings,
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Dialect reports which SQL flavor the engine was configured for.
func (e *Engine) Dialect() Dialect {
	return e.dialect.name
}

// Ping checks that the database is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	if err := e.db.Ping(ctx); err != nil {
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}

	return nil
}

// WithinTransaction runs fn inside one transaction: serializable on PostgreSQL,
// an IMMEDIATE transaction on SQLite when the DSN sets _txlock=immediate.
//
// Errors returned by fn are passed through after rollback, except that serialization
// failures, deadlocks and lock timeouts become ledger.ErrConcurrencyConflict and failed
// statements become ledger.ErrStoreUnavailable.
// A failure to begin or commit for any other reason becomes ledger.ErrStoreUnavailable.
func (e *Engine) WithinTransaction(ctx context.Context, fn ledger.TxFunc) error {
	start := time.Now()

	ctx, span := e.startTraceSpan(ctx, spanNameTransaction, map[string]string{
		spanAttrOperation: operationTransaction,
		spanAttrDialect:   string(e.dialect.name),
	})

	dbTx, err := e.db.BeginTx(ctx, adapters.TxOptions{Serializable: e.dialect.serializable})
	if err != nil {
		e.logError(ctx, logMsgBeginFailed, err)
		return e.finishTransactionFailure(ctx, span, start, e.classifyInfrastructureError(err))
	}

	tx := &transaction{session: session{engine: e, q: dbTx}}

	if err = fn(ctx, tx); err != nil {
		e.rollback(ctx, dbTx)

		if e.dialect.isConflictErr(err) {
			err = errors.Join(ledger.ErrConcurrencyConflict, err)
		} else {
			err = e.classifyStatementError(err)
		}

		return e.finishTransactionFailure(ctx, span, start, err)
	}

	if err = dbTx.Commit(ctx); err != nil {
		e.logError(ctx, logMsgCommitFailed, err)
		e.rollback(ctx, dbTx)

		return e.finishTransactionFailure(ctx, span, start, e.classifyInfrastructureError(err))
	}

	duration := time.Since(start)
	e.logOperation(ctx, logMsgTransactionCommitted, logAttrDurationMS, e.toMilliseconds(duration))
	e.recordDurationMetrics(ctx, metricTransactionDuration, duration, operationTransaction, statusSuccess)
	e.recordTransactionCounter(ctx, statusSuccess)
	e.finishTraceSpan(span, statusSuccess, map[string]string{spanAttrDurationMS: formatMS(duration)})

	return nil
}

func (e *Engine) classifyInfrastructureError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case e.dialect.isConflictErr(err):
		return errors.Join(ledger.ErrConcurrencyConflict, err)
	default:
		return errors.Join(ledger.ErrStoreUnavailable, err)
	}
}

// classifyStatementError marks failed reads and writes as infrastructure failures.
// Domain errors, missing rows and query-building bugs pass through unchanged.
func (e *Engine) classifyStatementError(err error) error {
	if errors.Is(err, ledger.ErrStoreUnavailable) {
		return err
	}

	if errors.Is(err, ledger.ErrQueryingFailed) || errors.Is(err, ledger.ErrWritingFailed) {
		return e.classifyInfrastructureError(err)
	}

	return err
}

func (e *Engine) rollback(ctx context.Context, dbTx adapters.DBTx) {
	// The transaction may already be closed after a failed commit; the rollback error is only logged.
	if err := dbTx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, sql.ErrTxDone) {
		e.logWarn(ctx, logMsgRollbackFailed, logAttrError, err.Error())
	}
}

func (e *Engine) finishTransactionFailure(ctx context.Context, span ledger.SpanContext, start time.Time, err error) error {
	duration := time.Since(start)
	status := statusError

	switch {
	case errors.Is(err, ledger.ErrConcurrencyConflict):
		status = statusConflict
		e.logOperation(ctx, logMsgConcurrencyConflict, logAttrError, err.Error())
		e.recordConcurrencyConflictMetrics(ctx, operationTransaction)
	case core.IsDomainError(err):
		status = statusRejected
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = statusCanceled
	default:
		e.recordErrorMetrics(ctx, operationTransaction, errorTypeOf(err))
	}

	e.recordDurationMetrics(ctx, metricTransactionDuration, duration, operationTransaction, status)
	e.recordTransactionCounter(ctx, status)
	e.finishTraceSpan(span, status, map[string]string{spanAttrDurationMS: formatMS(duration)})

	return err
}

// errorTypeOf names the failure class for metric labels.
func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, ledger.ErrBuildingQueryFailed):
		return errorTypeBuildQuery
	case errors.Is(err, ledger.ErrScanningRowFailed):
		return errorTypeScanRow
	case errors.Is(err, ledger.ErrQueryingFailed):
		return errorTypeQuery
	case errors.Is(err, ledger.ErrWritingFailed):
		return errorTypeWrite
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return errorTypeUnavailable
	default:
		return errorTypeUnknown
	}
}
