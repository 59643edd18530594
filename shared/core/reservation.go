package core

import (
	"fmt"
	"time"
)

// ReservationStatus is the lifecycle state of a Reservation.
// Fulfilled, Cancelled and Expired are terminal.
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusFulfilled ReservationStatus = "fulfilled"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusExpired   ReservationStatus = "expired"
)

// ParseReservationStatus converts external input into a ReservationStatus.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case ReservationStatusActive, ReservationStatusFulfilled, ReservationStatusCancelled, ReservationStatusExpired:
		return ReservationStatus(s), nil
	default:
		return "", Failure(ErrInvalidInput, fmt.Sprintf("unknown reservation status %q", s))
	}
}

// Reservation is a patron's standing request for the next free copy of a title.
type Reservation struct {
	ID         ReservationID     `json:"id"`
	PatronID   PatronID          `json:"patron_id"`
	TitleID    TitleID           `json:"title_id"`
	ReservedAt time.Time         `json:"reserved_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
	Status     ReservationStatus `json:"status"`
}

// PlaceReservation builds a new active reservation starting at now.
func PlaceReservation(patronID PatronID, titleID TitleID, now time.Time, reservationDays int) Reservation {
	reservedAt := ToOccurredAt(now)

	return Reservation{
		PatronID:   patronID,
		TitleID:    titleID,
		ReservedAt: reservedAt,
		ExpiresAt:  reservedAt.Add(Days(reservationDays)),
		Status:     ReservationStatusActive,
	}
}

// IsStale reports whether a stored-active reservation has passed its expiry at now.
func (r Reservation) IsStale(now time.Time) bool {
	return r.Status == ReservationStatusActive && now.After(r.ExpiresAt)
}

// IsLive reports whether the reservation is active and not yet expired at now.
func (r Reservation) IsLive(now time.Time) bool {
	return r.Status == ReservationStatusActive && !now.After(r.ExpiresAt)
}

// EffectiveStatus evaluates passive expiry without mutating anything.
func (r Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.IsStale(now) {
		return ReservationStatusExpired
	}

	return r.Status
}

// WithStatus gives back the reservation moved to status.
func (r Reservation) WithStatus(status ReservationStatus) Reservation {
	r.Status = status
	return r
}

// QueuedBefore orders reservations FIFO by reserved_at, ties broken by identity.
func (r Reservation) QueuedBefore(other Reservation) bool {
	if r.ReservedAt.Equal(other.ReservedAt) {
		return r.ID < other.ID
	}

	return r.ReservedAt.Before(other.ReservedAt)
}
