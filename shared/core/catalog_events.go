package core

import (
	"time"
)

const (
	// TitleAddedToCatalogEventType is the event type identifier.
	TitleAddedToCatalogEventType = "TitleAddedToCatalog"

	// TitleCopiesIncreasedEventType is the event type identifier.
	TitleCopiesIncreasedEventType = "TitleCopiesIncreased"

	// TitleRemovedFromCatalogEventType is the event type identifier.
	TitleRemovedFromCatalogEventType = "TitleRemovedFromCatalog"
)

// TitleAddedToCatalog represents when a new title enters the catalog.
type TitleAddedToCatalog struct {
	Title      Title      `json:"title"`
	OccurredAt OccurredAt `json:"occurred_at"`
}

// BuildTitleAddedToCatalog creates a new TitleAddedToCatalog event.
func BuildTitleAddedToCatalog(title Title, occurredAt time.Time) TitleAddedToCatalog {
	title.CreatedAt = ToOccurredAt(occurredAt)

	return TitleAddedToCatalog{
		Title:      title,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e TitleAddedToCatalog) EventType() string { return TitleAddedToCatalogEventType }

// HasOccurredAt returns when this event occurred.
func (e TitleAddedToCatalog) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityTitle.
func (e TitleAddedToCatalog) EntityType() EntityType { return EntityTitle }

// EntityID returns the stored title id.
func (e TitleAddedToCatalog) EntityID() int64 { return e.Title.ID }

// TitleCopiesIncreased represents when copies are added to an existing title.
type TitleCopiesIncreased struct {
	TitleID     TitleID    `json:"title_id"`
	Delta       int        `json:"delta"`
	TotalCopies int        `json:"total_copies"`
	OccurredAt  OccurredAt `json:"occurred_at"`
}

// BuildTitleCopiesIncreased creates a new TitleCopiesIncreased event.
func BuildTitleCopiesIncreased(title Title, delta int, occurredAt time.Time) TitleCopiesIncreased {
	return TitleCopiesIncreased{
		TitleID:     title.ID,
		Delta:       delta,
		TotalCopies: title.TotalCopies + delta,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e TitleCopiesIncreased) EventType() string { return TitleCopiesIncreasedEventType }

// HasOccurredAt returns when this event occurred.
func (e TitleCopiesIncreased) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityTitle.
func (e TitleCopiesIncreased) EntityType() EntityType { return EntityTitle }

// EntityID returns the title id.
func (e TitleCopiesIncreased) EntityID() int64 { return e.TitleID }

// TitleRemovedFromCatalog represents when a title and its closed history are deleted.
type TitleRemovedFromCatalog struct {
	TitleID    TitleID    `json:"title_id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	OccurredAt OccurredAt `json:"occurred_at"`
}

// BuildTitleRemovedFromCatalog creates a new TitleRemovedFromCatalog event.
func BuildTitleRemovedFromCatalog(title Title, occurredAt time.Time) TitleRemovedFromCatalog {
	return TitleRemovedFromCatalog{
		TitleID:    title.ID,
		Title:      title.Title,
		Author:     title.Author,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e TitleRemovedFromCatalog) EventType() string { return TitleRemovedFromCatalogEventType }

// HasOccurredAt returns when this event occurred.
func (e TitleRemovedFromCatalog) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityTitle.
func (e TitleRemovedFromCatalog) EntityType() EntityType { return EntityTitle }

// EntityID returns the removed title id.
func (e TitleRemovedFromCatalog) EntityID() int64 { return e.TitleID }
