package registeredpatrons

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// QueryHandler reads patrons from the store and projects them.
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (RegisteredPatrons, error) {
	ctx = ledger.WithEventualConsistency(ctx)

	if query.PatronID != nil {
		record, err := h.reader.GetPatron(ctx, *query.PatronID)
		if errors.Is(err, ledger.ErrEntityNotFound) {
			return RegisteredPatrons{}, core.Failure(core.ErrNotFound, fmt.Sprintf("patron %d", *query.PatronID))
		}
		if err != nil {
			return RegisteredPatrons{}, err
		}

		return Project([]ledger.PatronRecord{record}), nil
	}

	records, err := h.reader.ListPatrons(ctx, ledger.PatronFilter{
		Approved: query.Approved,
		Active:   query.Active,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return RegisteredPatrons{}, err
	}

	return Project(records), nil
}
