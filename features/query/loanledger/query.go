package loanledger

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	queryType = "LoanLedger"
)

// Query represents the intent to read loans.
// With LoanID set, exactly that loan is read and the filters are ignored.
// OverdueOnly selects open loans whose due date lies before Now.
type Query struct {
	LoanID      *core.LoanID
	PatronID    *core.PatronID
	TitleID     *core.TitleID
	Status      *core.LoanStatus
	OverdueOnly bool
	NewestFirst bool
	Limit       int
	Now         time.Time
}

// BuildQuery creates a listing Query.
func BuildQuery(
	patronID *core.PatronID,
	titleID *core.TitleID,
	status *core.LoanStatus,
	newestFirst bool,
	limit int,
	now time.Time,
) Query {
	return Query{
		PatronID:    patronID,
		TitleID:     titleID,
		Status:      status,
		NewestFirst: newestFirst,
		Limit:       limit,
		Now:         core.ToOccurredAt(now),
	}
}

// BuildOverdueQuery creates a Query for all loans that are overdue at now.
func BuildOverdueQuery(now time.Time) Query {
	return Query{OverdueOnly: true, Now: core.ToOccurredAt(now)}
}

// BuildRecentlyReturnedQuery creates a Query for the latest returned loans.
func BuildRecentlyReturnedQuery(limit int, now time.Time) Query {
	status := core.LoanStatusReturned

	return Query{Status: &status, NewestFirst: true, Limit: limit, Now: core.ToOccurredAt(now)}
}

// BuildLoanQuery creates a Query for one loan.
func BuildLoanQuery(loanID core.LoanID, now time.Time) Query {
	return Query{LoanID: &loanID, Now: core.ToOccurredAt(now)}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
