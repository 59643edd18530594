package titlesincatalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// QueryHandler reads catalog entries from the store and projects them.
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
// A missing single title is reported as core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (TitlesInCatalog, error) {
	ctx = ledger.WithEventualConsistency(ctx)

	if query.TitleID != nil {
		record, err := h.reader.GetTitle(ctx, *query.TitleID)
		if errors.Is(err, ledger.ErrEntityNotFound) {
			return TitlesInCatalog{}, core.Failure(core.ErrNotFound, fmt.Sprintf("title %d", *query.TitleID))
		}
		if err != nil {
			return TitlesInCatalog{}, err
		}

		return Project([]ledger.TitleRecord{record}), nil
	}

	records, err := h.reader.ListTitles(ctx, ledger.TitleFilter{
		Search:      query.Search,
		NewestFirst: query.NewestFirst,
		Limit:       query.Limit,
		Offset:      query.Offset,
	})
	if err != nil {
		return TitlesInCatalog{}, err
	}

	return Project(records), nil
}
