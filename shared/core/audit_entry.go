package core

import "time"

// EntityType names the kind of record an audit entry refers to.
type EntityType string

const (
	EntityTitle       EntityType = "title"
	EntityPatron      EntityType = "patron"
	EntityLoan        EntityType = "loan"
	EntityReservation EntityType = "reservation"
)

// AuditEntry is one append-only line of the audit trail.
type AuditEntry struct {
	ID         int64      `json:"id"`
	ActorType  ActorRole  `json:"actor_type"`
	ActorID    *int64     `json:"actor_id,omitempty"`
	Action     string     `json:"action"`
	EntityType EntityType `json:"entity_type"`
	EntityID   *int64     `json:"entity_id,omitempty"`
	Payload    *string    `json:"payload,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
