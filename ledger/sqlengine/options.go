package sqlengine

import "github.com/AntonStoeckl/library-circulation-go/ledger"

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithDialect overrides the SQL dialect. Only needed with NewEngineFromSQLDB, since database/sql
// does not reveal which driver sits behind a *sql.DB.
func WithDialect(dialect Dialect) Option {
	return func(e *Engine) error {
		settings, err := settingsFor(dialect)
		if err != nil {
			return err
		}

		e.dialect = settings

		return nil
	}
}

// WithLogger sets the logger for the Engine.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: transaction durations, concurrency conflicts, schema setup (production-safe)
// Warn level: non-critical issues like failed audit writes or rollback failures
// Error level: critical failures that cause operation failures.
func WithLogger(logger ledger.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Engine.
// It takes precedence over the plain logger and correlates log lines with the active trace.
func WithContextualLogger(logger ledger.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Engine.
func WithMetrics(collector ledger.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Engine.
func WithTracing(collector ledger.TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}
