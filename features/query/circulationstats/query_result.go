package circulationstats

import (
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// PopularTitle is one entry of the most-reserved ranking.
type PopularTitle struct {
	core.Title
	Reservations int `json:"reservations"`
}

// Stats represents the query result.
type Stats struct {
	Titles             int            `json:"titles"`
	Patrons            int            `json:"patrons"`
	OpenLoans          int            `json:"open_loans"`
	OverdueLoans       int            `json:"overdue_loans"`
	ActiveReservations int            `json:"active_reservations"`
	Reservations       int            `json:"reservations"`
	ReservingPatrons   int            `json:"reserving_patrons"`
	MostReserved       []PopularTitle `json:"most_reserved"`
}

// ResultCount returns the number of ranked titles.
func (s Stats) ResultCount() int {
	return len(s.MostReserved)
}
