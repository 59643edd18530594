package circulationstats

import (
	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

// Project builds the Stats from the store counts and the ranking.
func Project(counts ledger.Counts, ranking []ledger.ReservedTitleCount) Stats {
	popular := make([]PopularTitle, 0, len(ranking))

	for _, entry := range ranking {
		popular = append(popular, PopularTitle{
			Title:        entry.Title,
			Reservations: entry.Reservations,
		})
	}

	return Stats{
		Titles:             counts.Titles,
		Patrons:            counts.Patrons,
		OpenLoans:          counts.OpenLoans,
		OverdueLoans:       counts.OverdueLoans,
		ActiveReservations: counts.ActiveReservations,
		Reservations:       counts.Reservations,
		ReservingPatrons:   counts.ReservingPatrons,
		MostReserved:       popular,
	}
}
