package approvepatron

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "ApprovePatron"
)

// Command represents the intent to approve a pending patron.
type Command struct {
	PatronID   core.PatronID
	Actor      core.Actor
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID core.PatronID, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		PatronID:   patronID,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
