package extendreservation

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "ExtendReservation"
)

// Command represents the intent to keep a reservation in the queue for longer.
type Command struct {
	ReservationID core.ReservationID
	Days          int
	Actor         core.Actor
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID core.ReservationID, days int, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		Days:          days,
		Actor:         actor,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
