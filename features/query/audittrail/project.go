package audittrail

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

type storedPayload struct {
	Event    json.RawMessage     `json:"event"`
	Metadata shell.EventMetadata `json:"metadata"`
}

// Project decodes the payload of each entry.
func Project(entries []core.AuditEntry) AuditTrail {
	infos := make([]EntryInfo, 0, len(entries))

	for _, entry := range entries {
		info := EntryInfo{
			ID:         entry.ID,
			ActorType:  entry.ActorType,
			ActorID:    entry.ActorID,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			CreatedAt:  entry.CreatedAt,
		}

		if entry.Payload != nil {
			var payload storedPayload
			if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(*entry.Payload, &payload); err == nil {
				info.Event = payload.Event
				info.Metadata = &payload.Metadata
			}
		}

		infos = append(infos, info)
	}

	return AuditTrail{
		Entries: infos,
		Count:   len(infos),
	}
}
