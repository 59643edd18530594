package registeredpatrons

import (
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// PatronInfo is a patron with the loan numbers the circulation desk needs.
type PatronInfo struct {
	core.Patron
	OpenLoans   int  `json:"open_loans"`
	QuotaLeft   int  `json:"quota_left"`
	CanTransact bool `json:"can_transact"`
}

// RegisteredPatrons represents the query result.
type RegisteredPatrons struct {
	Patrons []PatronInfo `json:"patrons"`
	Count   int          `json:"count"`
}

// ResultCount returns the number of patrons in the result.
func (r RegisteredPatrons) ResultCount() int {
	return r.Count
}
