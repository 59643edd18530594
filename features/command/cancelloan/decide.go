package cancelloan

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

// State is the loan, its title and the title's queue.
type State = shell.ReleaseState

// Decide implements the business logic of a loan cancellation.
//
// Business Rules:
//
//	GIVEN: an open loan with LoanID
//	WHEN: CancelLoan command is received
//	THEN: LoanCanceled event is generated, followed by the queue promotion of a return
//	ERROR: InvalidInput if LoanDays is not positive
//	ERROR: NotFound if the loan does not exist
//	ERROR: AlreadyReturned if the loan is not open
func Decide(command Command, s State) core.DecisionResult {
	switch {
	case command.LoanDays <= 0:
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "loan days must be positive"))
	case !s.LoanFound:
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("loan %d", command.LoanID)))
	case !s.Loan.IsOpen():
		return core.ErrorDecision(core.Failure(core.ErrAlreadyReturned, fmt.Sprintf("loan %d was closed at %s", s.Loan.ID, s.Loan.ReturnedAt)))
	}

	promotion := core.DecidePromotion(s.Title.TotalCopies, s.OpenLoansAfterRelease(), s.Queue, s.Patrons, command.OccurredAt, command.LoanDays)

	return core.SuccessDecision(append(core.DomainEvents{core.BuildLoanCanceled(s.Loan, command.OccurredAt)}, promotion...)...)
}
