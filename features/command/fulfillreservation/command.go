package fulfillreservation

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	commandType = "FulfillReservation"
)

// Command represents the intent to convert a reservation into a loan.
type Command struct {
	ReservationID core.ReservationID
	LoanDays      int
	Actor         core.Actor
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID core.ReservationID, loanDays int, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		LoanDays:      loanDays,
		Actor:         actor,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
