package loanledger

import (
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// Project flags overdue loans as of query.Now and keeps the order of the loans.
func Project(loans []core.Loan, query Query) LoanLedger {
	infos := make([]LoanInfo, 0, len(loans))

	for _, loan := range loans {
		infos = append(infos, LoanInfo{
			Loan:    loan,
			Overdue: loan.IsOverdue(query.Now),
		})
	}

	return LoanLedger{
		Loans: infos,
		Count: len(infos),
	}
}
