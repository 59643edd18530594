package cancelreservation

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Reservation core.Reservation
	Found       bool
}

// Decide implements the business logic of a reservation cancellation.
//
// Business Rules:
//
//	GIVEN: a stored-active reservation with ReservationID, stale or not
//	WHEN: CancelReservation command is received
//	THEN: ReservationCanceled event is generated
//	ERROR: NotFound if the reservation does not exist
//	ERROR: AlreadyTerminal if the reservation was fulfilled, cancelled or expired
func Decide(command Command, s State) core.DecisionResult {
	if !s.Found {
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("reservation %d", command.ReservationID)))
	}

	if s.Reservation.Status != core.ReservationStatusActive {
		return core.ErrorDecision(core.Failure(core.ErrAlreadyTerminal, fmt.Sprintf("reservation %d is %s", s.Reservation.ID, s.Reservation.Status)))
	}

	return core.SuccessDecision(core.BuildReservationCanceled(s.Reservation, command.OccurredAt))
}
