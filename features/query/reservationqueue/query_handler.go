package reservationqueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// QueryHandler reads reservations from the store and projects them.
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (ReservationQueue, error) {
	ctx = ledger.WithEventualConsistency(ctx)

	if query.ReservationID != nil {
		reservation, err := h.reader.GetReservation(ctx, *query.ReservationID)
		if errors.Is(err, ledger.ErrEntityNotFound) {
			return ReservationQueue{}, core.Failure(core.ErrNotFound, fmt.Sprintf("reservation %d", *query.ReservationID))
		}
		if err != nil {
			return ReservationQueue{}, err
		}

		return Project([]core.Reservation{reservation}, query), nil
	}

	reservations, err := h.reader.ListReservations(ctx, ledger.ReservationFilter{
		PatronID:    query.PatronID,
		TitleID:     query.TitleID,
		Status:      storedStatusFilter(query.Status),
		NewestFirst: query.NewestFirst,
		Limit:       storedLimit(query),
	})
	if err != nil {
		return ReservationQueue{}, err
	}

	result := Project(reservations, query)
	if query.Limit > 0 && len(result.Reservations) > query.Limit {
		result.Reservations = result.Reservations[:query.Limit]
		result.Count = query.Limit
	}

	return result, nil
}

// storedStatusFilter narrows the read to the stored statuses that can have the requested effective one.
// Expired reservations may still be stored as active, so that filter is applied after reading.
func storedStatusFilter(effective *core.ReservationStatus) *core.ReservationStatus {
	if effective == nil || *effective == core.ReservationStatusExpired {
		return nil
	}

	return effective
}

// storedLimit is the store-side limit. It is only safe to push down when every stored row
// that matches also matches the effective filter.
func storedLimit(query Query) int {
	if query.Status == nil {
		return query.Limit
	}

	switch *query.Status {
	case core.ReservationStatusFulfilled, core.ReservationStatusCancelled:
		return query.Limit
	default:
		return 0
	}
}
