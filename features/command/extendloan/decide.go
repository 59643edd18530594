package extendloan

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Loan  core.Loan
	Found bool
}

// Decide implements the business logic of a loan extension.
//
// Business Rules:
//
//	GIVEN: an open loan with LoanID
//	WHEN: ExtendLoan command is received
//	THEN: LoanExtended event is generated with due_at + Days
//	ERROR: InvalidInput if Days is not positive
//	ERROR: NotFound if the loan does not exist
//	ERROR: AlreadyReturned if the loan is not open
func Decide(command Command, s State) core.DecisionResult {
	switch {
	case command.Days <= 0:
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "extension days must be positive"))
	case !s.Found:
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("loan %d", command.LoanID)))
	case !s.Loan.IsOpen():
		return core.ErrorDecision(core.Failure(core.ErrAlreadyReturned, fmt.Sprintf("loan %d", command.LoanID)))
	default:
		return core.SuccessDecision(core.BuildLoanExtended(s.Loan, command.Days, command.OccurredAt))
	}
}
