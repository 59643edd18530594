package reservetitle

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "ReserveTitle"
)

// Command represents the intent of a patron to queue for a title.
type Command struct {
	PatronID        core.PatronID
	TitleID         core.TitleID
	ReservationDays int
	Actor           core.Actor
	OccurredAt      core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	patronID core.PatronID,
	titleID core.TitleID,
	reservationDays int,
	actor core.Actor,
	occurredAt time.Time,
) Command {
	return Command{
		PatronID:        patronID,
		TitleID:         titleID,
		ReservationDays: reservationDays,
		Actor:           actor,
		OccurredAt:      core.ToOccurredAt(occurredAt),
	}
}
