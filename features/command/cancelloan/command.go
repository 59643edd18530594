package cancelloan

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "CancelLoan"
)

// Command represents the intent to end an open loan administratively.
type Command struct {
	LoanID     core.LoanID
	LoanDays   int
	Actor      core.Actor
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanID, loanDays int, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		LoanDays:   loanDays,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
