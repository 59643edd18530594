package borrowtitle

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "BorrowTitle"
)

// Command represents the intent of a patron to borrow one copy of a title.
type Command struct {
	PatronID   core.PatronID
	TitleID    core.TitleID
	LoanDays   int
	Actor      core.Actor
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	patronID core.PatronID,
	titleID core.TitleID,
	loanDays int,
	actor core.Actor,
	occurredAt time.Time,
) Command {
	return Command{
		PatronID:   patronID,
		TitleID:    titleID,
		LoanDays:   loanDays,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
