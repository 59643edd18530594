package loanledger

import (
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// LoanInfo is a loan with its overdue flag at query time.
type LoanInfo struct {
	core.Loan
	Overdue bool `json:"overdue"`
}

// LoanLedger represents the query result.
type LoanLedger struct {
	Loans []LoanInfo `json:"loans"`
	Count int        `json:"count"`
}

// ResultCount returns the number of loans in the result.
func (r LoanLedger) ResultCount() int {
	return r.Count
}
