package audittrail

import (
	"encoding/json"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

// EntryInfo is one audit entry with its payload decoded.
// Event and Metadata stay empty when the payload is missing or unreadable.
type EntryInfo struct {
	ID         int64                `json:"id"`
	ActorType  core.ActorRole       `json:"actor_type"`
	ActorID    *int64               `json:"actor_id,omitempty"`
	Action     string               `json:"action"`
	EntityType core.EntityType      `json:"entity_type"`
	EntityID   *int64               `json:"entity_id,omitempty"`
	Event      json.RawMessage      `json:"event,omitempty"`
	Metadata   *shell.EventMetadata `json:"metadata,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// AuditTrail represents the query result.
type AuditTrail struct {
	Entries []EntryInfo `json:"entries"`
	Count   int         `json:"count"`
}

// ResultCount returns the number of entries in the result.
func (a AuditTrail) ResultCount() int {
	return a.Count
}
