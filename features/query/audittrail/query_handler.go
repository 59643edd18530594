package audittrail

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

// QueryHandler reads audit entries from the store and projects them.
type QueryHandler struct {
	reader ledger.Reader
}

// NewQueryHandler creates a new QueryHandler with the provided Reader dependency.
func NewQueryHandler(reader ledger.Reader) QueryHandler {
	return QueryHandler{
		reader: reader,
	}
}

// Handle executes the query: Read -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AuditTrail, error) {
	ctx = ledger.WithEventualConsistency(ctx)

	entries, err := h.reader.ListAuditEntries(ctx, ledger.AuditFilter{
		EntityType: query.EntityType,
		EntityID:   query.EntityID,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		return AuditTrail{}, err
	}

	return Project(entries), nil
}
