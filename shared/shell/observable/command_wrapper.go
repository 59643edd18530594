package observable

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

// CommandWrapper reports every call of the wrapped command handler to the observers.
type CommandWrapper[C shell.Command] struct {
	next        shell.CoreCommandHandler[C]
	commandType string
	observers   shell.Observers
}

// NewCommandWrapper wraps next. Zero-valued observers make the wrapper a pass-through.
func NewCommandWrapper[C shell.Command](next shell.CoreCommandHandler[C], observers shell.Observers) *CommandWrapper[C] {
	var command C

	return &CommandWrapper[C]{next: next, commandType: command.CommandType(), observers: observers}
}

// Handle runs the command. Rule rejections count as rejected, not failed.
// Retry metrics are reported by the retry loop itself; here the attempt count only annotates
// the log line and the span.
func (w *CommandWrapper[C]) Handle(ctx context.Context, command C) (shell.HandlerResult, error) {
	ctx, observation := w.observers.ObserveCommand(ctx, w.commandType)

	result, err := w.next.Handle(ctx, command)

	var attrs []any
	if result.Retry.Attempts > 1 {
		attrs = []any{shell.LogAttrRetryAttempts, result.Retry.Attempts}
	}

	switch {
	case err != nil:
		observation.Fail(ctx, err, attrs...)
	case result.Idempotent:
		observation.Succeed(ctx, shell.StatusIdempotent, attrs...)
	default:
		observation.Succeed(ctx, shell.StatusSuccess, attrs...)
	}

	return result, err
}
