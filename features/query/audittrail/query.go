package audittrail

import (
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	queryType = "AuditTrail"
)

// Query represents the intent to read audit entries, optionally of one entity.
type Query struct {
	EntityType *core.EntityType
	EntityID   *int64
	Limit      int
	Offset     int
}

// BuildQuery creates a Query over all entries.
func BuildQuery(limit, offset int) Query {
	return Query{
		Limit:  limit,
		Offset: offset,
	}
}

// BuildEntityQuery creates a Query for the history of one entity.
func BuildEntityQuery(entityType core.EntityType, entityID int64, limit int) Query {
	return Query{
		EntityType: &entityType,
		EntityID:   &entityID,
		Limit:      limit,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
