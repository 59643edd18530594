package spies

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

// SpanRecord is a snapshot of one span.
type SpanRecord struct {
	Name             string
	StartAttributes  map[string]string
	Attributes       map[string]string
	Status           string
	FinishAttributes map[string]string
	Finished         bool
}

// TracingCollectorSpy implements ledger.TracingCollector.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*spySpan
}

// spySpan is the ledger.SpanContext handed out by the spy.
type spySpan struct {
	owner  *TracingCollectorSpy
	record SpanRecord
}

func (s *spySpan) SetStatus(status string) {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()

	s.record.Status = status
}

func (s *spySpan) AddAttribute(key, value string) {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()

	s.record.Attributes[key] = value
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, ledger.SpanContext) {
	span := &spySpan{owner: s, record: SpanRecord{
		Name:            name,
		StartAttributes: maps.Clone(attrs),
		Attributes:      map[string]string{},
	}}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.spans = append(s.spans, span)

	return ctx, span
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx ledger.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*spySpan)
	if !ok || span.owner != s {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	span.record.Status = status
	span.record.FinishAttributes = maps.Clone(attrs)
	span.record.Finished = true
}

// FindSpans returns snapshots of the spans started with the given name, in start order.
func (s *TracingCollectorSpy) FindSpans(name string) []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []SpanRecord
	for _, span := range s.spans {
		if span.record.Name == name {
			found = append(found, span.record)
		}
	}

	return found
}

var (
	_ ledger.TracingCollector           = (*TracingCollectorSpy)(nil)
	_ ledger.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
)
