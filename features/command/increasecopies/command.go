package increasecopies

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "IncreaseCopies"
)

// Command represents the intent to add copies to an existing title.
type Command struct {
	TitleID    core.TitleID
	Delta      int
	Actor      core.Actor
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(titleID core.TitleID, delta int, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		TitleID:    titleID,
		Delta:      delta,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
