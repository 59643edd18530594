package borrowtitle

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Patron          core.Patron
	PatronFound     bool
	PatronOpenLoans int
	Title           core.Title
	TitleFound      bool
	TitleOpenLoans  int
}

// Decide implements the business logic to determine whether a patron may borrow a copy.
//
// Business Rules:
//
//	GIVEN: a patron with PatronID and a title with TitleID
//	WHEN: BorrowTitle command is received
//	THEN: LoanOpened event is generated, due LoanDays after now
//	ERROR: InvalidInput if LoanDays is not positive
//	ERROR: PatronNotEligible if the patron is unknown, not approved or inactive
//	ERROR: NotFound if the title does not exist
//	ERROR: NoCopiesAvailable if every copy is lent out
//	ERROR: LoanLimitExceeded if the patron already holds quota open loans
func Decide(command Command, s State) core.DecisionResult {
	if command.LoanDays <= 0 {
		return core.ErrorDecision(core.Failure(core.ErrInvalidInput, "loan days must be positive"))
	}

	if !s.PatronFound || !s.Patron.CanTransact() {
		return core.ErrorDecision(core.Failure(core.ErrPatronNotEligible, fmt.Sprintf("patron %d cannot borrow", command.PatronID)))
	}

	if !s.TitleFound {
		return core.ErrorDecision(core.Failure(core.ErrNotFound, fmt.Sprintf("title %d", command.TitleID)))
	}

	if core.AvailableCopies(s.Title.TotalCopies, s.TitleOpenLoans) == 0 {
		return core.ErrorDecision(core.Failure(core.ErrNoCopiesAvailable, fmt.Sprintf("all %d copies of title %d are lent out", s.Title.TotalCopies, s.Title.ID)))
	}

	if !s.Patron.HasQuotaLeft(s.PatronOpenLoans) {
		return core.ErrorDecision(core.Failure(core.ErrLoanLimitExceeded, fmt.Sprintf("patron %d holds %d of %d loans", s.Patron.ID, s.PatronOpenLoans, s.Patron.Quota)))
	}

	return core.SuccessDecision(
		core.BuildLoanOpened(
			core.OpenLoan(command.PatronID, command.TitleID, command.OccurredAt, command.LoanDays),
			command.OccurredAt,
		),
	)
}
