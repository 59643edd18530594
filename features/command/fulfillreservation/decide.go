package fulfillreservation

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Reservation     core.Reservation
	Found           bool
	Title           core.Title
	TitleOpenLoans  int
	Patron          core.Patron
	PatronOpenLoans int
}

// Decide implements the business logic of a manual fulfillment.
//
// Business Rules:
//
//	GIVEN: a live reservation with ReservationID
//	WHEN: FulfillReservation command is received
//	THEN: ReservationFulfilled and LoanOpened events are generated, the loan referencing the reservation
//	ERROR: InvalidInput if LoanDays is not positive
//	ERROR: NotFound if the reservation does not exist
//	ERROR: AlreadyTerminal if the reservation is terminal or past its expiry
//	ERROR: PatronNotEligible if the patron is not approved or not active
//	ERROR: NoCopiesAvailable if every copy is lent out
//	ERROR: LoanLimitExceeded if the patron already holds quota open loans
func Decide(command Command, s State) core.DecisionResult {
	if command.LoanDays <= 0 {
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "loan days must be positive"))
	}

	if !s.Found {
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("reservation %d", command.ReservationID)))
	}

	if !s.Reservation.IsLive(command.OccurredAt) {
		return core.ErrorDecision(core.Failure(
			core.ErrAlreadyTerminal,
			fmt.Sprintf("reservation %d is %s", s.Reservation.ID, s.Reservation.EffectiveStatus(command.OccurredAt)),
		))
	}

	if !s.Patron.CanTransact() {
		return core.ErrorDecision(core.Failure(core.ErrPatronNotEligible, fmt.Sprintf("patron %d is not approved or not active", s.Patron.ID)))
	}

	if core.AvailableCopies(s.Title.TotalCopies, s.TitleOpenLoans) == 0 {
		return core.ErrorDecision(core.Failure(core.ErrNoCopiesAvailable, fmt.Sprintf("all %d copies of title %d are lent out", s.Title.TotalCopies, s.Title.ID)))
	}

	if !s.Patron.HasQuotaLeft(s.PatronOpenLoans) {
		return core.ErrorDecision(core.Failure(core.ErrLoanLimitExceeded, fmt.Sprintf("patron %d holds %d of %d loans", s.Patron.ID, s.PatronOpenLoans, s.Patron.Quota)))
	}

	return core.SuccessDecision(core.FulfillmentEvents(s.Reservation, command.OccurredAt, command.LoanDays)...)
}
