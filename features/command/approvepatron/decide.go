package approvepatron

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Patron core.Patron
	Found  bool
}

// Decide implements the business logic of a patron approval.
//
//	THEN: PatronApproved event is generated, approved_at = now
//	IDEMPOTENCY: an approved patron stays approved, no event generated
//	ERROR: NotFound if the patron does not exist
func Decide(command Command, s State) core.DecisionResult {
	if !s.Found {
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("patron %d", command.PatronID)))
	}

	if s.Patron.Approved {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildPatronApproved(command.PatronID, command.OccurredAt))
}
