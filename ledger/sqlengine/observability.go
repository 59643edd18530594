package sqlengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

const (
	metricTransactionDuration  = "sqlengine_transaction_duration_seconds"
	metricQueryDuration        = "sqlengine_query_duration_seconds"
	metricTransactionsTotal    = "sqlengine_transactions_total"
	metricConcurrencyConflicts = "sqlengine_concurrency_conflicts_total"
	metricDatabaseErrors       = "sqlengine_database_errors_total"
	metricAuditWriteFailures   = "sqlengine_audit_write_failures_total"

	spanNameTransaction = "sqlengine.transaction"
	spanNameRead        = "sqlengine.read"

	spanAttrOperation  = "operation"
	spanAttrDialect    = "dialect"
	spanAttrDurationMS = "duration_ms"
	spanAttrErrorType  = "error_type"
	spanAttrAction     = "action"

	operationTransaction = "transaction"
	operationRead        = "read"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "concurrency_conflict"
	statusRejected = "rejected"
	statusCanceled = "canceled"

	errorTypeUnavailable = "store_unavailable"
	errorTypeBuildQuery  = "build_query"
	errorTypeQuery       = "query"
	errorTypeScanRow     = "scan_row"
	errorTypeWrite       = "write"
	errorTypeUnknown     = "unknown"
)

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (e *Engine) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, e.toMilliseconds(duration), logAttrQuery, sqlQuery}

	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level.
func (e *Engine) logOperation(ctx context.Context, action string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if e.logger != nil {
		e.logger.Info(logMsgOperation+action, args...)
	}
}

func (e *Engine) logWarn(ctx context.Context, message string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if e.logger != nil {
		e.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level.
func (e *Engine) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if e.logger != nil {
		e.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (e *Engine) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMS(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d.Nanoseconds())/1e6)
}

func (e *Engine) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if e.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := e.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	e.metricsCollector.IncrementCounter(metric, labels)
}

// recordDurationMetrics records duration metrics, with context if the collector supports it.
func (e *Engine) recordDurationMetrics(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	if contextualCollector, ok := e.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
		return
	}

	e.metricsCollector.RecordDuration(metricName, duration, labels)
}

func (e *Engine) recordTransactionCounter(ctx context.Context, status string) {
	e.incrementCounter(ctx, metricTransactionsTotal, map[string]string{
		spanAttrDialect: string(e.dialect.name),
		"status":        status,
	})
}

func (e *Engine) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	e.incrementCounter(ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	})
}

func (e *Engine) recordConcurrencyConflictMetrics(ctx context.Context, operation string) {
	e.incrementCounter(ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: operation,
		"conflict_type":   "concurrency",
	})
}

func (e *Engine) recordAuditWriteFailure(ctx context.Context, action string) {
	e.incrementCounter(ctx, metricAuditWriteFailures, map[string]string{
		spanAttrAction: action,
	})
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (e *Engine) startTraceSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, ledger.SpanContext) {
	if e.tracingCollector != nil {
		return e.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (e *Engine) finishTraceSpan(spanCtx ledger.SpanContext, status string, attrs map[string]string) {
	if e.tracingCollector != nil && spanCtx != nil {
		e.tracingCollector.FinishSpan(spanCtx, status, attrs)
	}
}
