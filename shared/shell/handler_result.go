package shell

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// RetryMetrics describes how a retried unit of work went.
type RetryMetrics struct {
	// Attempts is the number of times the unit of work was executed.
	Attempts int

	// TotalDelay is the time spent sleeping between attempts.
	TotalDelay time.Duration

	// LastErrorType classifies the error of the final attempt, "none" on success.
	LastErrorType string

	// RetriesExhausted is true when every attempt failed with a retryable error.
	RetriesExhausted bool
}

// HandlerResult is what a command handler reports besides its error.
type HandlerResult struct {
	// Idempotent is set when the command changed nothing because its effect was already in place.
	Idempotent bool

	Retry RetryMetrics

	// Events are the applied events with the ids of inserted rows filled in.
	// Empty for idempotent and failed commands.
	Events core.DomainEvents
}

// EventOf returns the first applied event of type E.
func EventOf[E core.DomainEvent](result HandlerResult) (E, bool) {
	for _, event := range result.Events {
		if e, ok := event.(E); ok {
			return e, true
		}
	}

	var zero E

	return zero, false
}
