package removetitle

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "RemoveTitle"
)

// Command represents the intent to take a title out of the catalog.
type Command struct {
	TitleID    core.TitleID
	Actor      core.Actor
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(titleID core.TitleID, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		TitleID:    titleID,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
