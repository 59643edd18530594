package changepatronstatus

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Patron core.Patron
	Found  bool
}

// Decide implements the business logic of a status change.
//
//	THEN: PatronDeactivated or PatronReactivated
//	IDEMPOTENCY: no event when the patron already has the requested status
//	ERROR: NotFound if the patron does not exist
func Decide(command Command, s State) core.DecisionResult {
	if !s.Found {
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("patron %d", command.PatronID)))
	}

	if s.Patron.Active == command.Active {
		return core.IdempotentDecision()
	}

	if command.Active {
		return core.SuccessDecision(core.BuildPatronReactivated(command.PatronID, command.OccurredAt))
	}

	return core.SuccessDecision(core.BuildPatronDeactivated(command.PatronID, command.OccurredAt))
}
