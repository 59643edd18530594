package core

import (
	"slices"
	"time"
)

// SortQueue orders reservations FIFO by reserved_at, ties broken by id.
func SortQueue(queue []Reservation) []Reservation {
	ordered := slices.Clone(queue)
	slices.SortStableFunc(ordered, func(a, b Reservation) int {
		switch {
		case a.QueuedBefore(b):
			return -1
		case b.QueuedBefore(a):
			return 1
		default:
			return 0
		}
	})

	return ordered
}

// FulfillmentEvents converts a reservation into a loan: the reservation becomes Fulfilled
// and a new open loan referencing it is created for the reservation's patron.
func FulfillmentEvents(reservation Reservation, now time.Time, loanDays int) DomainEvents {
	loan := OpenLoan(reservation.PatronID, reservation.TitleID, now, loanDays)
	reservationID := reservation.ID
	loan.ReservationID = &reservationID

	return DomainEvents{
		BuildReservationFulfilled(reservation, now),
		BuildLoanOpened(loan, now),
	}
}

// DecidePromotion searches the title's queue after a copy was released.
//
// Reservations are visited in FIFO order. Stale ones are expired and skipped.
// Live reservations whose patron cannot transact, or is absent from patrons, are
// skipped and stay Active. The first remaining live reservation is fulfilled if a copy
// is available; the patron's quota is not consulted on this path.
//
// openLoansAfterRelease must already exclude the released loan.
func DecidePromotion(
	totalCopies int,
	openLoansAfterRelease int,
	queue []Reservation,
	patrons map[PatronID]Patron,
	now time.Time,
	loanDays int,
) DomainEvents {

	events := DomainEvents{}

	for _, reservation := range SortQueue(queue) {
		if reservation.Status != ReservationStatusActive {
			continue
		}

		if reservation.IsStale(now) {
			events = append(events, BuildReservationExpired(reservation, now))
			continue
		}

		if patron, ok := patrons[reservation.PatronID]; !ok || !patron.CanTransact() {
			continue
		}

		if AvailableCopies(totalCopies, openLoansAfterRelease) > 0 {
			events = append(events, FulfillmentEvents(reservation, now, loanDays)...)
		}

		break
	}

	return events
}
