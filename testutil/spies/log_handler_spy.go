package spies

import (
	"context"
	"log/slog"
)

// LogHandlerSpy is a slog.Handler keeping every record it receives.
type LogHandlerSpy struct {
	records *recorder[slog.Record]
}

func NewLogHandlerSpy() *LogHandlerSpy {
	return &LogHandlerSpy{records: &recorder[slog.Record]{}}
}

// Logger returns a logger writing into the spy. It serves as both ledger.Logger and ledger.ContextualLogger.
func (s *LogHandlerSpy) Logger() *slog.Logger {
	return slog.New(s)
}

func (s *LogHandlerSpy) Enabled(context.Context, slog.Level) bool { return true }

func (s *LogHandlerSpy) Handle(_ context.Context, record slog.Record) error {
	s.records.add(record.Clone())
	return nil
}

func (s *LogHandlerSpy) WithAttrs([]slog.Attr) slog.Handler { return s }

func (s *LogHandlerSpy) WithGroup(string) slog.Handler { return s }

// HasLog reports a record with exactly this level and message.
func (s *LogHandlerSpy) HasLog(level slog.Level, message string) bool {
	return s.records.count(func(r slog.Record) bool {
		return r.Level == level && r.Message == message
	}) > 0
}

// HasLogWithAttr is HasLog for records that also carry the attribute key.
func (s *LogHandlerSpy) HasLogWithAttr(level slog.Level, message, key string) bool {
	return s.records.count(func(r slog.Record) bool {
		if r.Level != level || r.Message != message {
			return false
		}

		found := false
		r.Attrs(func(attr slog.Attr) bool {
			found = attr.Key == key
			return !found
		})

		return found
	}) > 0
}
