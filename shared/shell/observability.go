package shell

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// Command handler metrics. Durations are in seconds, OpenTelemetry style.
const (
	CommandHandlerDurationMetric            = "commandhandler_handle_duration_seconds"
	CommandHandlerCallsMetric               = "commandhandler_handle_calls_total"
	CommandHandlerIdempotentMetric          = "commandhandler_idempotent_operations_total"
	CommandHandlerRejectedMetric            = "commandhandler_rejected_operations_total"
	CommandHandlerCanceledMetric            = "commandhandler_canceled_operations_total"
	CommandHandlerTimeoutMetric             = "commandhandler_timeout_operations_total"
	CommandHandlerConcurrencyConflictMetric = "commandhandler_concurrency_conflicts_total"

	// CommandHandlerRetriesMetric counts attempts that are followed by another one,
	// labeled with command_type, attempt_number and error_type.
	// Borrow and return retries cluster on popular titles.
	CommandHandlerRetriesMetric = "commandhandler_retries_total"

	// CommandHandlerRetryDelayMetric is the backoff slept before each retry.
	CommandHandlerRetryDelayMetric = "commandhandler_retry_delay_seconds"

	// CommandHandlerMaxRetriesReachedMetric counts commands that lost every attempt, labeled with final_error_type.
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"
)

// Query handler metrics.
const (
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"
	QueryHandlerCallsMetric    = "queryhandler_handle_calls_total"
	QueryHandlerCanceledMetric = "queryhandler_canceled_operations_total"
	QueryHandlerTimeoutMetric  = "queryhandler_timeout_operations_total"
)

// Outcome of a handler call, used as metric label, span status and log attribute.
const (
	StatusSuccess             = "success"
	StatusError               = "error"
	StatusIdempotent          = "idempotent"
	StatusRejected            = "rejected"
	StatusCanceled            = "canceled"
	StatusTimeout             = "timeout"
	StatusConcurrencyConflict = "concurrency_conflict"
)

const (
	LogMsgCommandStarted   = "command handler started"
	LogMsgCommandCompleted = "command handler completed"
	LogMsgCommandRejected  = "command handler rejected command"
	LogMsgCommandFailed    = "command handler failed"
	LogMsgQueryStarted     = "query handler started"
	LogMsgQueryCompleted   = "query handler completed"
	LogMsgQueryFailed      = "query handler failed"

	LogAttrCommandType     = "command_type"
	LogAttrQueryType       = "query_type"
	LogAttrStatus          = "status"
	LogAttrDurationMS      = "duration_ms"
	LogAttrBusinessOutcome = "business_outcome"
	LogAttrError           = "error"
	LogAttrResultCount     = "result_count"
	LogAttrRetryAttempts   = "retry_attempts"

	SpanNameCommandHandle = "commandhandler.handle"
	SpanNameQueryHandle   = "queryhandler.handle"

	metricLabelAttemptNo      = "attempt_number"
	metricLabelErrorType      = "error_type"
	metricLabelFinalErrorType = "final_error_type"
)

// The handler layer reports through the same collector interfaces as the ledger.
type (
	MetricsCollector           = ledger.MetricsCollector
	ContextualMetricsCollector = ledger.ContextualMetricsCollector
	TracingCollector           = ledger.TracingCollector
	SpanContext                = ledger.SpanContext
	ContextualLogger           = ledger.ContextualLogger
	Logger                     = ledger.Logger
)

// Observers bundles the optional collectors a handler reports to. Nil members are skipped,
// and the contextual logger wins over the plain one when both are set.
type Observers struct {
	Metrics          MetricsCollector
	Tracing          TracingCollector
	ContextualLogger ContextualLogger
	Logger           Logger
}

// handlerKind holds what differs between observing commands and queries.
type handlerKind struct {
	spanName       string
	typeAttr       string
	durationMetric string
	callsMetric    string
	statusCounters map[string]string
	msgStarted     string
	msgCompleted   string
	msgRejected    string
	msgFailed      string
	classify       func(error) string
}

var commandKind = handlerKind{
	spanName:       SpanNameCommandHandle,
	typeAttr:       LogAttrCommandType,
	durationMetric: CommandHandlerDurationMetric,
	callsMetric:    CommandHandlerCallsMetric,
	statusCounters: map[string]string{
		StatusIdempotent:          CommandHandlerIdempotentMetric,
		StatusRejected:            CommandHandlerRejectedMetric,
		StatusCanceled:            CommandHandlerCanceledMetric,
		StatusTimeout:             CommandHandlerTimeoutMetric,
		StatusConcurrencyConflict: CommandHandlerConcurrencyConflictMetric,
	},
	msgStarted:   LogMsgCommandStarted,
	msgCompleted: LogMsgCommandCompleted,
	msgRejected:  LogMsgCommandRejected,
	msgFailed:    LogMsgCommandFailed,
	classify:     StatusOf,
}

// Queries have no rule rejections: a NotFound is reported as an error.
var queryKind = handlerKind{
	spanName:       SpanNameQueryHandle,
	typeAttr:       LogAttrQueryType,
	durationMetric: QueryHandlerDurationMetric,
	callsMetric:    QueryHandlerCallsMetric,
	statusCounters: map[string]string{
		StatusCanceled: QueryHandlerCanceledMetric,
		StatusTimeout:  QueryHandlerTimeoutMetric,
	},
	msgStarted:   LogMsgQueryStarted,
	msgCompleted: LogMsgQueryCompleted,
	msgFailed:    LogMsgQueryFailed,
	classify: func(err error) string {
		switch status := StatusOf(err); status {
		case StatusCanceled, StatusTimeout:
			return status
		default:
			return StatusError
		}
	},
}

// Observation follows one handler call from start to finish.
type Observation struct {
	observers Observers
	kind      *handlerKind
	name      string
	span      SpanContext
	started   time.Time
}

// ObserveCommand starts observing a command call: it opens the span and logs the start.
// The returned context carries the span and must be passed to the core handler.
func (o Observers) ObserveCommand(ctx context.Context, commandType string) (context.Context, *Observation) {
	return o.observe(ctx, &commandKind, commandType)
}

// ObserveQuery is ObserveCommand for queries.
func (o Observers) ObserveQuery(ctx context.Context, queryType string) (context.Context, *Observation) {
	return o.observe(ctx, &queryKind, queryType)
}

func (o Observers) observe(ctx context.Context, kind *handlerKind, name string) (context.Context, *Observation) {
	ob := &Observation{observers: o, kind: kind, name: name, started: time.Now()}

	if o.Tracing != nil {
		ctx, ob.span = o.Tracing.StartSpan(ctx, kind.spanName, map[string]string{kind.typeAttr: name})
	}

	o.log(ctx, false, kind.msgStarted, kind.typeAttr, name)

	return ctx, ob
}

// Succeed records the call as finished with status (success or idempotent).
// attrs are extra key-value pairs for the log line and the span.
func (ob *Observation) Succeed(ctx context.Context, status string, attrs ...any) {
	duration := time.Since(ob.started)

	ob.recordMetrics(ctx, status, duration)
	ob.finishSpan(status, duration, nil, attrs)

	args := append([]any{
		ob.kind.typeAttr, ob.name,
		LogAttrBusinessOutcome, status,
		LogAttrDurationMS, ToMilliseconds(duration),
	}, attrs...)

	ob.observers.log(ctx, false, ob.kind.msgCompleted, args...)
}

// Fail records the call as failed with err and returns the status err was classified as.
// Rule rejections of commands are a normal business outcome and are logged at info level.
func (ob *Observation) Fail(ctx context.Context, err error, attrs ...any) string {
	duration := time.Since(ob.started)
	status := ob.kind.classify(err)

	ob.recordMetrics(ctx, status, duration)
	ob.finishSpan(status, duration, err, attrs)

	args := append([]any{ob.kind.typeAttr, ob.name, LogAttrError, err.Error()}, attrs...)

	if status == StatusRejected {
		ob.observers.log(ctx, false, ob.kind.msgRejected, append(args, LogAttrBusinessOutcome, StatusRejected)...)
		return status
	}

	ob.observers.log(ctx, true, ob.kind.msgFailed, args...)

	return status
}

func (ob *Observation) recordMetrics(ctx context.Context, status string, duration time.Duration) {
	collector := ob.observers.Metrics
	if collector == nil {
		return
	}

	labels := map[string]string{ob.kind.typeAttr: ob.name, LogAttrStatus: status}

	recordDuration(ctx, collector, ob.kind.durationMetric, duration, labels)
	incrementCounter(ctx, collector, ob.kind.callsMetric, labels)

	if metric, ok := ob.kind.statusCounters[status]; ok {
		incrementCounter(ctx, collector, metric, labels)
	}
}

func (ob *Observation) finishSpan(status string, duration time.Duration, err error, attrs []any) {
	if ob.observers.Tracing == nil || ob.span == nil {
		return
	}

	spanAttrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: strconv.FormatFloat(ToMilliseconds(duration), 'f', 2, 64),
	}

	for i := 0; i+1 < len(attrs); i += 2 {
		if key, ok := attrs[i].(string); ok {
			spanAttrs[key] = attributeString(attrs[i+1])
		}
	}

	if err != nil {
		spanAttrs[LogAttrError] = err.Error()
	}

	ob.observers.Tracing.FinishSpan(ob.span, status, spanAttrs)
}

func (o Observers) log(ctx context.Context, isError bool, msg string, args ...any) {
	switch {
	case o.ContextualLogger != nil && isError:
		o.ContextualLogger.ErrorContext(ctx, msg, args...)
	case o.ContextualLogger != nil:
		o.ContextualLogger.InfoContext(ctx, msg, args...)
	case o.Logger != nil && isError:
		o.Logger.Error(msg, args...)
	case o.Logger != nil:
		o.Logger.Info(msg, args...)
	}
}

func attributeString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case time.Duration:
		return value.String()
	default:
		return ""
	}
}

// BuildCommandLabels creates the metric labels of a command handler call.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildRetryLabels creates the metric labels of a retry.
func BuildRetryLabels(commandType string, attemptNumber int, errorType string) map[string]string {
	return map[string]string{
		LogAttrCommandType:   commandType,
		metricLabelAttemptNo: strconv.Itoa(attemptNumber),
		metricLabelErrorType: errorType,
	}
}

// ToMilliseconds converts a duration to fractional milliseconds.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

func recordDuration(ctx context.Context, collector MetricsCollector, metric string, d time.Duration, labels map[string]string) {
	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	collector.RecordDuration(metric, d, labels)
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}

// StatusOf classifies a command error.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case core.IsDomainError(err):
		return StatusRejected
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(err, ledger.ErrConcurrencyConflict):
		return StatusConcurrencyConflict
	default:
		return StatusError
	}
}
