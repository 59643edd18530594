package spies

import (
	"context"
	"maps"
	"time"
)

// MetricRecord is one call on the MetricsCollectorSpy. Value holds the recorded value,
// the duration in seconds, or 1 for a counter increment.
type MetricRecord struct {
	Kind   string
	Metric string
	Value  float64
	Labels map[string]string
}

const (
	kindDuration = "duration"
	kindCounter  = "counter"
	kindValue    = "value"
)

// MetricsCollectorSpy implements ledger.ContextualMetricsCollector.
type MetricsCollectorSpy struct {
	records *recorder[MetricRecord]
}

func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{records: &recorder[MetricRecord]{}}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.records.add(MetricRecord{Kind: kindDuration, Metric: metric, Value: duration.Seconds(), Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.records.add(MetricRecord{Kind: kindCounter, Metric: metric, Value: 1, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.records.add(MetricRecord{Kind: kindValue, Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

// GetDurationRecords returns all recorded durations.
func (s *MetricsCollectorSpy) GetDurationRecords() []MetricRecord {
	var durations []MetricRecord
	for _, record := range s.records.all() {
		if record.Kind == kindDuration {
			durations = append(durations, record)
		}
	}

	return durations
}

// HasDurationRecord reports a duration of the metric recorded with the given status label.
func (s *MetricsCollectorSpy) HasDurationRecord(metric, status string) bool {
	return s.records.count(func(r MetricRecord) bool {
		return r.Kind == kindDuration && r.Metric == metric && r.Labels["status"] == status
	}) > 0
}

// CountCounterRecords counts increments of the metric whose labels contain all pairs of labels.
func (s *MetricsCollectorSpy) CountCounterRecords(metric string, labels map[string]string) int {
	return s.records.count(func(r MetricRecord) bool {
		return r.Kind == kindCounter && r.Metric == metric && containsLabels(r.Labels, labels)
	})
}
