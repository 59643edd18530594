package observable

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
)

// QueryWrapper is CommandWrapper for read views. The row count goes into the completion log.
type QueryWrapper[Q shell.Query, R shell.QueryResult] struct {
	next      shell.CoreQueryHandler[Q, R]
	queryType string
	observers shell.Observers
}

func NewQueryWrapper[Q shell.Query, R shell.QueryResult](next shell.CoreQueryHandler[Q, R], observers shell.Observers) *QueryWrapper[Q, R] {
	var query Q

	return &QueryWrapper[Q, R]{next: next, queryType: query.QueryType(), observers: observers}
}

// Handle runs the query. A NotFound answer is reported with the error status.
func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	ctx, observation := w.observers.ObserveQuery(ctx, w.queryType)

	result, err := w.next.Handle(ctx, query)
	if err != nil {
		observation.Fail(ctx, err)
		return result, err
	}

	observation.Succeed(ctx, shell.StatusSuccess, shell.LogAttrResultCount, result.ResultCount())

	return result, nil
}
