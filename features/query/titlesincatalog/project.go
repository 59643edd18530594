package titlesincatalog

import (
	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// Project turns store records into the query result, deriving the available copies of each title.
// It keeps the order of the records.
func Project(records []ledger.TitleRecord) TitlesInCatalog {
	titles := make([]TitleInfo, 0, len(records))

	for _, record := range records {
		titles = append(titles, TitleInfo{
			Title:           record.Title,
			OpenLoans:       record.OpenLoans,
			AvailableCopies: core.AvailableCopies(record.Title.TotalCopies, record.OpenLoans),
		})
	}

	return TitlesInCatalog{
		Titles: titles,
		Count:  len(titles),
	}
}
