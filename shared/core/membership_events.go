package core

import (
	"time"
)

const (
	// PatronRegisteredEventType is the event type identifier.
	PatronRegisteredEventType = "PatronRegistered"

	// PatronApprovedEventType is the event type identifier.
	PatronApprovedEventType = "PatronApproved"

	// PatronDeactivatedEventType is the event type identifier.
	PatronDeactivatedEventType = "PatronDeactivated"

	// PatronReactivatedEventType is the event type identifier.
	PatronReactivatedEventType = "PatronReactivated"
)

// PatronRegistered represents when a person signs up. The patron starts pending approval.
type PatronRegistered struct {
	Patron     Patron     `json:"patron"`
	OccurredAt OccurredAt `json:"occurred_at"`
}

// BuildPatronRegistered creates a new PatronRegistered event.
func BuildPatronRegistered(patron Patron, occurredAt time.Time) PatronRegistered {
	patron.RegisteredAt = ToOccurredAt(occurredAt)
	patron.Approved = false
	patron.ApprovedAt = nil
	patron.Active = true

	return PatronRegistered{
		Patron:     patron,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e PatronRegistered) EventType() string { return PatronRegisteredEventType }

// HasOccurredAt returns when this event occurred.
func (e PatronRegistered) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityPatron.
func (e PatronRegistered) EntityType() EntityType { return EntityPatron }

// EntityID returns the stored patron id.
func (e PatronRegistered) EntityID() int64 { return e.Patron.ID }

// PatronApproved represents the Pending -> Approved transition.
type PatronApproved struct {
	PatronID   PatronID   `json:"patron_id"`
	OccurredAt OccurredAt `json:"occurred_at"`
}

// BuildPatronApproved creates a new PatronApproved event.
func BuildPatronApproved(patronID PatronID, occurredAt time.Time) PatronApproved {
	return PatronApproved{
		PatronID:   patronID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e PatronApproved) EventType() string { return PatronApprovedEventType }

// HasOccurredAt returns when this event occurred.
func (e PatronApproved) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityPatron.
func (e PatronApproved) EntityType() EntityType { return EntityPatron }

// EntityID returns the patron id.
func (e PatronApproved) EntityID() int64 { return e.PatronID }

// PatronDeactivated represents when a patron loses the right to transact. Existing loans stay valid.
type PatronDeactivated struct {
	PatronID   PatronID   `json:"patron_id"`
	OccurredAt OccurredAt `json:"occurred_at"`
}

// BuildPatronDeactivated creates a new PatronDeactivated event.
func BuildPatronDeactivated(patronID PatronID, occurredAt time.Time) PatronDeactivated {
	return PatronDeactivated{
		PatronID:   patronID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e PatronDeactivated) EventType() string { return PatronDeactivatedEventType }

// HasOccurredAt returns when this event occurred.
func (e PatronDeactivated) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityPatron.
func (e PatronDeactivated) EntityType() EntityType { return EntityPatron }

// EntityID returns the patron id.
func (e PatronDeactivated) EntityID() int64 { return e.PatronID }

// PatronReactivated represents when a deactivated patron is allowed to transact again.
type PatronReactivated struct {
	PatronID   PatronID   `json:"patron_id"`
	OccurredAt OccurredAt `json:"occurred_at"`
}

// BuildPatronReactivated creates a new PatronReactivated event.
func BuildPatronReactivated(patronID PatronID, occurredAt time.Time) PatronReactivated {
	return PatronReactivated{
		PatronID:   patronID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e PatronReactivated) EventType() string { return PatronReactivatedEventType }

// HasOccurredAt returns when this event occurred.
func (e PatronReactivated) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityPatron.
func (e PatronReactivated) EntityType() EntityType { return EntityPatron }

// EntityID returns the patron id.
func (e PatronReactivated) EntityID() int64 { return e.PatronID }
