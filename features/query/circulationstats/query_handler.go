package circulationstats

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

// QueryHandler reads the counts and the ranking from the store.
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (Stats, error) {
	ctx = ledger.WithEventualConsistency(ctx)

	counts, err := h.reader.CirculationCounts(ctx, query.Now)
	if err != nil {
		return Stats{}, err
	}

	limit := query.PopularLimit
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	ranking, err := h.reader.MostReservedTitles(ctx, limit)
	if err != nil {
		return Stats{}, err
	}

	return Project(counts, ranking), nil
}
