package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a state change decided by the circulation rules.
// The shell turns each event into row mutations and one audit entry.
type DomainEvent interface {
	// EventType returns the string identifier for this event type, also used as the audit action.
	EventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// EntityType returns the kind of record the event mutates.
	EntityType() EntityType

	// EntityID returns the id of the mutated record, zero while the record is not yet stored.
	EntityID() int64
}
