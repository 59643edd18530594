package returnloan

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

// State is the loan, its title and the title's queue, see shell.ReleaseState.
type State = shell.ReleaseState

// Decide implements the business logic of a return.
//
// Business Rules:
//
//	GIVEN: an open loan with LoanID
//	WHEN: ReturnLoan command is received
//	THEN: LoanReturned event is generated
//	AND: stale reservations at the head of the queue get ReservationExpired
//	AND: the first live reservation of a patron who can transact gets ReservationFulfilled plus LoanOpened, if a copy is free
//	AND: reservations of patrons who cannot transact are skipped and stay Active
//	ERROR: InvalidInput if LoanDays is not positive
//	ERROR: NotFound if the loan does not exist
//	ERROR: AlreadyReturned if the loan is not open
func Decide(command Command, s State) core.DecisionResult {
	if command.LoanDays <= 0 {
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "loan days must be positive"))
	}

	if !s.LoanFound {
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("loan %d", command.LoanID)))
	}

	if !s.Loan.IsOpen() {
		return core.ErrorDecision(core.Failure(core.ErrAlreadyReturned, fmt.Sprintf("loan %d", command.LoanID)))
	}

	events := core.DomainEvents{core.BuildLoanReturned(s.Loan, command.OccurredAt)}
	events = append(events, core.DecidePromotion(
		s.Title.TotalCopies,
		s.OpenLoansAfterRelease(),
		s.Queue,
		s.Patrons,
		command.OccurredAt,
		command.LoanDays,
	)...)

	return core.SuccessDecision(events...)
}
