package increasecopies

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Title core.Title
	Found bool
}

// Decide implements the business logic of adding copies.
//
//	ERROR: InvalidInput if Delta is not positive
//	ERROR: NotFound if the title does not exist
func Decide(command Command, s State) core.DecisionResult {
	if command.Delta <= 0 {
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "delta must be positive"))
	}

	if !s.Found {
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("title %d", command.TitleID)))
	}

	return core.SuccessDecision(core.BuildTitleCopiesIncreased(s.Title, command.Delta, command.OccurredAt))
}
