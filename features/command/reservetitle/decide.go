package reservetitle

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
// Existing is the stored-active reservation of the same patron and title, if any.
type State struct {
	Patron      core.Patron
	PatronFound bool
	TitleFound  bool
	Existing    *core.Reservation
}

// Decide implements the business logic to determine whether a patron may join a title's queue.
//
// Business Rules:
//
//	GIVEN: a patron with PatronID and a title with TitleID
//	WHEN: ReserveTitle command is received
//	THEN: ReservationPlaced event is generated, expiring ReservationDays after now
//	AND: a stale reservation of the same pair gets ReservationExpired first
//	ERROR: InvalidInput if ReservationDays is not positive
//	ERROR: PatronNotEligible if the patron is unknown, not approved or inactive
//	ERROR: NotFound if the title does not exist
//	ERROR: DuplicateReservation if the pair already has a live reservation
func Decide(command Command, s State) core.DecisionResult {
	if command.ReservationDays <= 0 {
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "reservation days must be positive"))
	}

	if !s.PatronFound || !s.Patron.CanTransact() {
		return core.ErrorDecision(core.Failure(core.ErrPatronNotEligible, fmt.Sprintf("patron %d cannot reserve", command.PatronID)))
	}

	if !s.TitleFound {
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("title %d", command.TitleID)))
	}

	events := core.DomainEvents{}

	if s.Existing != nil {
		if s.Existing.IsLive(command.OccurredAt) {
			return core.ErrorDecision(core.Failure(
				core.ErrDuplicateReservation,
				fmt.Sprintf("reservation %d is active until %s", s.Existing.ID, s.Existing.ExpiresAt.Format("2006-01-02")),
			))
		}

		events = append(events, core.BuildReservationExpired(*s.Existing, command.OccurredAt))
	}

	placed := core.PlaceReservation(command.PatronID, command.TitleID, command.OccurredAt, command.ReservationDays)
	events = append(events, core.BuildReservationPlaced(placed, command.OccurredAt))

	return core.SuccessDecision(events...)
}
