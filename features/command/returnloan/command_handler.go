package returnloan

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
	return shell.LoadReleaseState(ctx, tx, command.LoanID)
}

// Outcome is what a return did: the closed loan and, if the queue was promoted, the fulfilled
// reservation with the loan created for it.
type Outcome struct {
	Loan                core.Loan
	PromotedReservation *core.Reservation
	PromotedLoan        *core.Loan
	ExpiredReservations []core.Reservation
}

// OutcomeFrom reads the Outcome of a successful return from the handler result.
func OutcomeFrom(result shell.HandlerResult) Outcome {
	return outcomeFrom(result.Events)
}

func outcomeFrom(events core.DomainEvents) Outcome {
	outcome := Outcome{}

	for _, event := range events {
		switch e := event.(type) {
		case core.LoanReturned:
			outcome.Loan = e.Loan
		case core.ReservationExpired:
			outcome.ExpiredReservations = append(outcome.ExpiredReservations, e.Reservation)
		case core.ReservationFulfilled:
			reservation := e.Reservation
			outcome.PromotedReservation = &reservation
		case core.LoanOpened:
			loan := e.Loan
			outcome.PromotedLoan = &loan
		}
	}

	return outcome
}
