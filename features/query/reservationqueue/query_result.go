package reservationqueue

import (
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// ReservationInfo is a reservation with its effective status.
// QueuePosition is 1-based and only set for live reservations of a title listed in queue order.
type ReservationInfo struct {
	core.Reservation
	StoredStatus  core.ReservationStatus `json:"stored_status"`
	QueuePosition int                    `json:"queue_position,omitempty"`
}

// ReservationQueue represents the query result.
type ReservationQueue struct {
	Reservations []ReservationInfo `json:"reservations"`
	Count        int               `json:"count"`
}

// ResultCount returns the number of reservations in the result.
func (r ReservationQueue) ResultCount() int {
	return r.Count
}
