package addtitle

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
// Existing is the catalog entry with the same title and author, if any.
type State struct {
	Existing  *core.Title
	ISBNInUse bool
}

// Decide implements the business logic of adding copies of a title to the catalog.
//
// Business Rules:
//
//	GIVEN: a title and author with a number of copies
//	WHEN: AddTitle command is received
//	THEN: TitleCopiesIncreased if the title and author are already in the catalog
//	ELSE: TitleAddedToCatalog with TotalCopies = Copies
//	ERROR: InvalidInput if title or author is blank or Copies < 1
//	ERROR: Conflict if a new entry would reuse an ISBN
func Decide(command Command, s State) core.DecisionResult {
	if command.Title.Title == "" || command.Title.Author == "" {
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "title and author are required"))
	}

	if command.Copies < 1 {
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "at least one copy is required"))
	}

	if s.Existing != nil {
		return core.SuccessDecision(core.BuildTitleCopiesIncreased(*s.Existing, command.Copies, command.OccurredAt))
	}

	if command.Title.ISBN != nil && s.ISBNInUse {
		return core.ErrorDecision(core.Failure(core.ErrConflict, fmt.Sprintf("isbn %s is already in the catalog", *command.Title.ISBN)))
	}

	title := command.Title
	title.TotalCopies = command.Copies

	return core.SuccessDecision(core.BuildTitleAddedToCatalog(title, command.OccurredAt))
}
