package core

import (
	"time"
)

const (
	// ReservationPlacedEventType is the event type identifier.
	ReservationPlacedEventType = "ReservationPlaced"

	// ReservationFulfilledEventType is the event type identifier.
	ReservationFulfilledEventType = "ReservationFulfilled"

	// ReservationCanceledEventType is the event type identifier.
	ReservationCanceledEventType = "ReservationCanceled"

	// ReservationExpiredEventType is the event type identifier.
	ReservationExpiredEventType = "ReservationExpired"

	// ReservationExtendedEventType is the event type identifier.
	ReservationExtendedEventType = "ReservationExtended"
)

// ReservationPlaced represents a patron joining the queue for a title.
type ReservationPlaced struct {
	Reservation Reservation `json:"reservation"`
	OccurredAt  OccurredAt  `json:"occurred_at"`
}

// BuildReservationPlaced creates a new ReservationPlaced event.
func BuildReservationPlaced(reservation Reservation, occurredAt time.Time) ReservationPlaced {
	return ReservationPlaced{
		Reservation: reservation,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationPlaced) EventType() string { return ReservationPlacedEventType }

// HasOccurredAt returns when this event occurred.
func (e ReservationPlaced) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityReservation.
func (e ReservationPlaced) EntityType() EntityType { return EntityReservation }

// EntityID returns the stored reservation id.
func (e ReservationPlaced) EntityID() int64 { return e.Reservation.ID }

// ReservationFulfilled represents a reservation converted into a loan.
// It is always followed by a LoanOpened referencing the reservation.
type ReservationFulfilled struct {
	Reservation Reservation `json:"reservation"`
	OccurredAt  OccurredAt  `json:"occurred_at"`
}

// BuildReservationFulfilled creates a new ReservationFulfilled event.
func BuildReservationFulfilled(reservation Reservation, occurredAt time.Time) ReservationFulfilled {
	return ReservationFulfilled{
		Reservation: reservation.WithStatus(ReservationStatusFulfilled),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationFulfilled) EventType() string { return ReservationFulfilledEventType }

// HasOccurredAt returns when this event occurred.
func (e ReservationFulfilled) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityReservation.
func (e ReservationFulfilled) EntityType() EntityType { return EntityReservation }

// EntityID returns the reservation id.
func (e ReservationFulfilled) EntityID() int64 { return e.Reservation.ID }

// ReservationCanceled represents a reservation withdrawn before it was served.
type ReservationCanceled struct {
	Reservation Reservation `json:"reservation"`
	OccurredAt  OccurredAt  `json:"occurred_at"`
}

// BuildReservationCanceled creates a new ReservationCanceled event.
func BuildReservationCanceled(reservation Reservation, occurredAt time.Time) ReservationCanceled {
	return ReservationCanceled{
		Reservation: reservation.WithStatus(ReservationStatusCancelled),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationCanceled) EventType() string { return ReservationCanceledEventType }

// HasOccurredAt returns when this event occurred.
func (e ReservationCanceled) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityReservation.
func (e ReservationCanceled) EntityType() EntityType { return EntityReservation }

// EntityID returns the reservation id.
func (e ReservationCanceled) EntityID() int64 { return e.Reservation.ID }

// ReservationExpired persists a passive expiry discovered while the reservation was in use.
type ReservationExpired struct {
	Reservation Reservation `json:"reservation"`
	OccurredAt  OccurredAt  `json:"occurred_at"`
}

// BuildReservationExpired creates a new ReservationExpired event.
func BuildReservationExpired(reservation Reservation, occurredAt time.Time) ReservationExpired {
	return ReservationExpired{
		Reservation: reservation.WithStatus(ReservationStatusExpired),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationExpired) EventType() string { return ReservationExpiredEventType }

// HasOccurredAt returns when this event occurred.
func (e ReservationExpired) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityReservation.
func (e ReservationExpired) EntityType() EntityType { return EntityReservation }

// EntityID returns the reservation id.
func (e ReservationExpired) EntityID() int64 { return e.Reservation.ID }

// ReservationExtended represents a pushed-back expiry.
type ReservationExtended struct {
	ReservationID     ReservationID `json:"reservation_id"`
	PreviousExpiresAt time.Time     `json:"previous_expires_at"`
	ExpiresAt         time.Time     `json:"expires_at"`
	OccurredAt        OccurredAt    `json:"occurred_at"`
}

// BuildReservationExtended creates a new ReservationExtended event.
// A reservation already past its expiry is extended from occurredAt, not from the stale value.
func BuildReservationExtended(reservation Reservation, days int, occurredAt time.Time) ReservationExtended {
	base := reservation.ExpiresAt
	if occurredAt.After(base) {
		base = occurredAt
	}

	return ReservationExtended{
		ReservationID:     reservation.ID,
		PreviousExpiresAt: reservation.ExpiresAt,
		ExpiresAt:         ToOccurredAt(base.Add(Days(days))),
		OccurredAt:        ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationExtended) EventType() string { return ReservationExtendedEventType }

// HasOccurredAt returns when this event occurred.
func (e ReservationExtended) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityReservation.
func (e ReservationExtended) EntityType() EntityType { return EntityReservation }

// EntityID returns the reservation id.
func (e ReservationExtended) EntityID() int64 { return e.ReservationID }
