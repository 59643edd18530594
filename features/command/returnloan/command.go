package returnloan

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "ReturnLoan"
)

// Command represents the intent to bring a borrowed copy back.
// LoanDays is the length of the loan created when the copy goes to a waiting reservation.
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
