package addtitle

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

// CommandHandler orchestrates the command processing workflow with pure business logic and retry.
type CommandHandler struct {
	transactor   ledger.Transactor
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(transactor ledger.Transactor, opts ...Option) CommandHandler {
	handler := CommandHandler{
		transactor: transactor,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry logic, Lock -> Decide -> Apply in one transaction.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	return shell.ExecuteCommand(ctx, h.transactor, command.Actor, func(ctx context.Context, tx ledger.Tx) (core.DecisionResult, error) {
		s, err := loadState(ctx, tx, command)
		if err != nil {
			return core.DecisionResult{}, err
		}

		return Decide(command, s), nil
	}, h.retryOptions...)
}

func loadState(ctx context.Context, tx ledger.Tx, command Command) (State, error) {
	s := State{}

	existing, found, err := tx.FindTitleByTitleAndAuthor(ctx, command.Title.Title, command.Title.Author)
	if err != nil {
		return s, err
	}

	if found {
		s.Existing = &existing
		return s, nil
	}

	if command.Title.ISBN != nil {
		if s.ISBNInUse, err = tx.ISBNInUse(ctx, *command.Title.ISBN); err != nil {
			return s, err
		}
	}

	return s, nil
}

// TitleIDFrom returns the id of the title that was created or topped up.
func TitleIDFrom(result shell.HandlerResult) (core.TitleID, bool) {
	if added, ok := shell.EventOf[core.TitleAddedToCatalog](result); ok {
		return added.Title.ID, true
	}

	if increased, ok := shell.EventOf[core.TitleCopiesIncreased](result); ok {
		return increased.TitleID, true
	}

	return 0, false
}
