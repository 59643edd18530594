package removetitle

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
// Queue holds the title's stored-active reservations.
type State struct {
	Title     core.Title
	Found     bool
	OpenLoans int
	Queue     []core.Reservation
}

// Decide implements the business logic of a title removal.
//
// Business Rules:
//
//	GIVEN: a title with TitleID
//	WHEN: RemoveTitle command is received
//	THEN: TitleRemovedFromCatalog event is generated
//	ERROR: NotFound if the title does not exist
//	ERROR: Conflict if a copy is lent out or a live reservation waits for the title
func Decide(command Command, s State) core.DecisionResult {
	if !s.Found {
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("title %d", command.TitleID)))
	}

	if s.OpenLoans > 0 {
		return core.ErrorDecision(core.Failure(core.ErrConflict, fmt.Sprintf("title %d has %d open loans", s.Title.ID, s.OpenLoans)))
	}

	for _, reservation := range s.Queue {
		if reservation.IsLive(command.OccurredAt) {
			return core.ErrorDecision(core.Failure(core.ErrConflict, fmt.Sprintf("title %d has active reservations", s.Title.ID)))
		}
	}

	return core.SuccessDecision(core.BuildTitleRemovedFromCatalog(s.Title, command.OccurredAt))
}
