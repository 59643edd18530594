package registerpatron

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

// CommandHandler orchestrates the command processing workflow with pure business logic and retry.
type CommandHandler struct {
	transactor   ledger.Transactor
	defaultQuota int
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

// WithPolicy takes the default quota for new patrons from the given policy.
func WithPolicy(policy core.Policy) Option {
	return func(h *CommandHandler) {
		h.defaultQuota = policy.DefaultQuota
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
// Without WithPolicy, patrons get core.DefaultPolicy's quota.
func NewCommandHandler(transactor ledger.Transactor, opts ...Option) CommandHandler {
	handler := CommandHandler{
		transactor:   transactor,
		defaultQuota: core.DefaultPolicy().DefaultQuota,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry logic, Check -> Decide -> Apply in one transaction.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	return shell.ExecuteCommand(ctx, h.transactor, command.Actor, func(ctx context.Context, tx ledger.Tx) (core.DecisionResult, error) {
		s, err := h.loadState(ctx, tx, command)
		if err != nil {
			return core.DecisionResult{}, err
		}

		return Decide(command, s), nil
	}, h.retryOptions...)
}

func (h CommandHandler) loadState(ctx context.Context, tx ledger.Tx, command Command) (State, error) {
	s := State{DefaultQuota: h.defaultQuota}
	var err error

	if command.Email != "" {
		if s.EmailInUse, err = tx.EmailInUse(ctx, command.Email); err != nil {
			return s, err
		}
	}

	if command.CardNumber != nil {
		if s.CardNumberInUse, err = tx.CardNumberInUse(ctx, *command.CardNumber); err != nil {
			return s, err
		}
	}

	return s, nil
}

// PatronFrom returns the patron a successful registration created.
func PatronFrom(result shell.HandlerResult) (core.Patron, bool) {
	registered, ok := shell.EventOf[core.PatronRegistered](result)
	return registered.Patron, ok
}
