package reservationqueue

import (
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// Project evaluates passive expiry at query.Now, applies the effective-status filter and
// numbers the live queue when the reservations of one title are listed oldest first.
func Project(reservations []core.Reservation, query Query) ReservationQueue {
	numberQueue := query.TitleID != nil && !query.NewestFirst
	position := 0

	infos := make([]ReservationInfo, 0, len(reservations))

	for _, reservation := range reservations {
		effective := reservation.EffectiveStatus(query.Now)
		if query.Status != nil && effective != *query.Status {
			continue
		}

		info := ReservationInfo{
			Reservation:  reservation.WithStatus(effective),
			StoredStatus: reservation.Status,
		}

		if numberQueue && reservation.IsLive(query.Now) {
			position++
			info.QueuePosition = position
		}

		infos = append(infos, info)
	}

	return ReservationQueue{
		Reservations: infos,
		Count:        len(infos),
	}
}
