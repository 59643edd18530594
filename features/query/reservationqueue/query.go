package reservationqueue

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	queryType = "ReservationQueue"
)

// Query represents the intent to read reservations.
// Status filters by the effective status at Now, not by the stored one.
type Query struct {
	ReservationID *core.ReservationID
	PatronID      *core.PatronID
	TitleID       *core.TitleID
	Status        *core.ReservationStatus
	NewestFirst   bool
	Limit         int
	Now           time.Time
}

// BuildQuery creates a listing Query.
func BuildQuery(
	patronID *core.PatronID,
	titleID *core.TitleID,
	status *core.ReservationStatus,
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

// BuildQueueQuery creates a Query for the live queue of one title, in promotion order.
func BuildQueueQuery(titleID core.TitleID, now time.Time) Query {
	status := core.ReservationStatusActive

	return Query{TitleID: &titleID, Status: &status, Now: core.ToOccurredAt(now)}
}

// BuildReservationQuery creates a Query for one reservation.
func BuildReservationQuery(reservationID core.ReservationID, now time.Time) Query {
	return Query{ReservationID: &reservationID, Now: core.ToOccurredAt(now)}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
