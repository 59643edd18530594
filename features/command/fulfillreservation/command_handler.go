package fulfillreservation

import (
	"context"
	"errors"

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

// loadState locks the reservation first, then its title and patron.
func loadState(ctx context.Context, tx ledger.Tx, command Command) (State, error) {
	s := State{}

	reservation, err := tx.LockReservation(ctx, command.ReservationID)
	if errors.Is(err, ledger.ErrEntityNotFound) {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	s.Reservation = reservation
	s.Found = true

	if !reservation.IsLive(command.OccurredAt) {
		return s, nil
	}

	if s.Title, err = tx.LockTitle(ctx, reservation.TitleID); err != nil {
		return s, err
	}

	if s.TitleOpenLoans, err = tx.CountOpenLoansForTitle(ctx, reservation.TitleID); err != nil {
		return s, err
	}

	if s.Patron, err = tx.LockPatron(ctx, reservation.PatronID); err != nil {
		return s, err
	}

	if s.PatronOpenLoans, err = tx.CountOpenLoansForPatron(ctx, reservation.PatronID); err != nil {
		return s, err
	}

	return s, nil
}

// LoanFrom returns the loan a successful fulfillment created.
func LoanFrom(result shell.HandlerResult) (core.Loan, bool) {
	opened, ok := shell.EventOf[core.LoanOpened](result)
	return opened.Loan, ok
}
