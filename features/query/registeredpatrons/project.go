package registeredpatrons

import (
	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

// Project turns store records into the query result.
// QuotaLeft is floored at zero, since promotion may push a patron past the quota.
func Project(records []ledger.PatronRecord) RegisteredPatrons {
	patrons := make([]PatronInfo, 0, len(records))

	for _, record := range records {
		quotaLeft := max(record.Patron.Quota-record.OpenLoans, 0)

		patrons = append(patrons, PatronInfo{
			Patron:      record.Patron,
			OpenLoans:   record.OpenLoans,
			QuotaLeft:   quotaLeft,
			CanTransact: record.Patron.CanTransact(),
		})
	}

	return RegisteredPatrons{
		Patrons: patrons,
		Count:   len(patrons),
	}
}
