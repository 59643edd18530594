package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// DecideInTx loads the decision state through tx and returns the pure decision taken on it.
type DecideInTx func(ctx context.Context, tx ledger.Tx) (core.DecisionResult, error)

// ExecuteCommand runs the workflow every command handler shares: one transaction per attempt,
// retried on concurrency conflicts, in which decide runs and its events are applied and audited.
//
// A rejected decision rolls the transaction back and is returned as the command's error.
// Idempotent decisions commit nothing.
func ExecuteCommand(
	ctx context.Context,
	transactor ledger.Transactor,
	actor core.Actor,
	decide DecideInTx,
	retryOptions ...RetryOption,
) (HandlerResult, error) {
	causation := NewCausation(ctx, actor)

	var isIdempotent bool
	var applied core.DomainEvents

	retryMetrics, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		isIdempotent = false
		applied = nil

		return transactor.WithinTransaction(retryCtx, func(txCtx context.Context, tx ledger.Tx) error {
			decision, decideErr := decide(txCtx, tx)
			if decideErr != nil {
				return decideErr
			}

			if rejection := decision.HasError(); rejection != nil {
				return rejection
			}

			if decision.IsIdempotent() || !decision.HasEventsToApply() {
				isIdempotent = true
				return nil
			}

			events, applyErr := ApplyEvents(txCtx, tx, causation, decision.Events...)
			if applyErr != nil {
				return applyErr
			}

			applied = events

			return nil
		})
	}, retryOptions...)

	if err != nil {
		return HandlerResult{Retry: retryMetrics}, err
	}

	return HandlerResult{Idempotent: isIdempotent, Retry: retryMetrics, Events: applied}, nil
}
