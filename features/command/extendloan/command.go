package extendloan

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "ExtendLoan"
)

// Command represents the intent to push back the due date of an open loan.
type Command struct {
	LoanID     core.LoanID
	Days       int
	Actor      core.Actor
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanID, days int, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		Days:       days,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
