package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-circulation-go/ledger/oteladapters"
)

type emitted struct {
	record      log.Record
	spanContext trace.SpanContext
}

// recordingLogger keeps every emitted record together with the span found in its context.
type recordingLogger struct {
	noop.Logger

	mu      sync.Mutex
	records []emitted
}

func (l *recordingLogger) Emit(ctx context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, emitted{record: record, spanContext: trace.SpanContextFromContext(ctx)})
}

func (l *recordingLogger) Enabled(context.Context, log.EnabledParameters) bool {
	return true
}

type recordingProvider struct {
	noop.LoggerProvider

	logger *recordingLogger
}

func (p recordingProvider) Logger(string, ...log.LoggerOption) log.Logger {
	return p.logger
}

func attributesOfRecord(record log.Record) map[string]string {
	attrs := make(map[string]string)
	record.WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value.AsString()
		return true
	})

	return attrs
}

func Test_SlogBridgeLogger_CorrelatesWithActiveSpan(t *testing.T) {
	// arrange
	spy := &recordingLogger{}
	logger := oteladapters.NewSlogBridgeLoggerWithProvider("circulation", recordingProvider{logger: spy})

	tracerProvider := sdktrace.NewTracerProvider()
	defer func() { _ = tracerProvider.Shutdown(context.Background()) }()
	ctx, span := tracerProvider.Tracer("test").Start(context.Background(), "borrow")
	defer span.End()

	// act
	logger.InfoContext(ctx, "loan opened", "loan_id", "42")
	logger.WarnContext(context.Background(), "audit write failed")

	// assert
	require.Len(t, spy.records, 2)
	assert.Equal(t, "loan opened", spy.records[0].record.Body().AsString())
	assert.Equal(t, log.SeverityInfo, spy.records[0].record.Severity())
	assert.Equal(t, span.SpanContext().TraceID(), spy.records[0].spanContext.TraceID())
	assert.Equal(t, "42", attributesOfRecord(spy.records[0].record)["loan_id"])

	assert.Equal(t, log.SeverityWarn, spy.records[1].record.Severity())
	assert.False(t, spy.records[1].spanContext.IsValid())
}

func Test_SlogBridgeLoggerWithHandler_WritesToHandler(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// act
	logger.DebugContext(context.Background(), "sql executed", "duration_ms", 1.5)
	logger.ErrorContext(context.Background(), "commit failed")

	// assert
	assert.Contains(t, buf.String(), "sql executed")
	assert.Contains(t, buf.String(), "duration_ms=1.5")
	assert.Contains(t, buf.String(), "commit failed")
}

func Test_OTelLogger_EmitsRecords(t *testing.T) {
	// arrange
	spy := &recordingLogger{}
	logger := oteladapters.NewOTelLogger(spy)

	// act
	logger.DebugContext(context.Background(), "debug")
	logger.InfoContext(context.Background(), "info", "title_id", 7, "dangling")
	logger.WarnContext(context.Background(), "warn", 3, "ignored")
	logger.ErrorContext(context.Background(), "error", "error", "boom")

	// assert
	require.Len(t, spy.records, 4)
	assert.Equal(t, log.SeverityDebug, spy.records[0].record.Severity())
	assert.Equal(t, log.SeverityInfo, spy.records[1].record.Severity())
	assert.Equal(t, map[string]string{"title_id": "7"}, attributesOfRecord(spy.records[1].record))
	assert.Empty(t, attributesOfRecord(spy.records[2].record))
	assert.Equal(t, log.SeverityError, spy.records[3].record.Severity())
	assert.Equal(t, "boom", attributesOfRecord(spy.records[3].record)["error"])
}
