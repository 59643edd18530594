package loanledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// QueryHandler reads loans from the store and projects them.
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoanLedger, error) {
	ctx = ledger.WithEventualConsistency(ctx)

	if query.LoanID != nil {
		loan, err := h.reader.GetLoan(ctx, *query.LoanID)
		if errors.Is(err, ledger.ErrEntityNotFound) {
			return LoanLedger{}, core.Failure(core.ErrNotFound, fmt.Sprintf("loan %d", *query.LoanID))
		}
		if err != nil {
			return LoanLedger{}, err
		}

		return Project([]core.Loan{loan}, query), nil
	}

	filter := ledger.LoanFilter{
		PatronID:    query.PatronID,
		TitleID:     query.TitleID,
		Status:      query.Status,
		NewestFirst: query.NewestFirst,
		Limit:       query.Limit,
	}

	if query.OverdueOnly {
		filter.DueBefore = &query.Now
	}

	loans, err := h.reader.ListLoans(ctx, filter)
	if err != nil {
		return LoanLedger{}, err
	}

	return Project(loans, query), nil
}
