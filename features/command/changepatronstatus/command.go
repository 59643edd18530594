package changepatronstatus

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "ChangePatronStatus"
)

// Command represents the intent to set a patron's active flag.
type Command struct {
	PatronID   core.PatronID
	Active     bool
	Actor      core.Actor
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patronID core.PatronID, active bool, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		PatronID:   patronID,
		Active:     active,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
