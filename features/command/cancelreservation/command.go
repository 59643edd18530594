package cancelreservation

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "CancelReservation"
)

// Command represents the intent to withdraw a reservation.
type Command struct {
	ReservationID core.ReservationID
	Actor         core.Actor
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID core.ReservationID, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		Actor:         actor,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
