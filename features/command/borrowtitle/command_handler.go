package borrowtitle

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

// CommandHandler orchestrates the command processing workflow with pure business logic and retry.
// It runs Lock -> Decide -> Apply inside one transaction; external wrappers handle observability.
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

// Handle executes the command. On success the result carries the LoanOpened event with the new loan.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	return shell.ExecuteCommand(ctx, h.transactor, command.Actor, func(ctx context.Context, tx ledger.Tx) (core.DecisionResult, error) {
		s, err := loadState(ctx, tx, command)
		if err != nil {
			return core.DecisionResult{}, err
		}

		return Decide(command, s), nil
	}, h.retryOptions...)
}

// loadState locks the title and the patron, so that concurrent borrows of either serialize.
func loadState(ctx context.Context, tx ledger.Tx, command Command) (State, error) {
	s := State{}
	var err error

	s.Title, err = tx.LockTitle(ctx, command.TitleID)
	switch {
	case errors.Is(err, ledger.ErrEntityNotFound):
	case err != nil:
		return s, err
	default:
		s.TitleFound = true
		if s.TitleOpenLoans, err = tx.CountOpenLoansForTitle(ctx, command.TitleID); err != nil {
			return s, err
		}
	}

	s.Patron, err = tx.LockPatron(ctx, command.PatronID)
	switch {
	case errors.Is(err, ledger.ErrEntityNotFound):
	case err != nil:
		return s, err
	default:
		s.PatronFound = true
		if s.PatronOpenLoans, err = tx.CountOpenLoansForPatron(ctx, command.PatronID); err != nil {
			return s, err
		}
	}

	return s, nil
}

// LoanFrom returns the loan a successful borrow created.
func LoanFrom(result shell.HandlerResult) (core.Loan, bool) {
	opened, ok := shell.EventOf[core.LoanOpened](result)
	return opened.Loan, ok
}
