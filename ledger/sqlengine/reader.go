package sqlengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine/internal/adapters"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	aliasOpenLoans    = "open_loans"
	aliasReservations = "reservation_count"
)

var _ ledger.Reader = (*Engine)(nil)

var _ ledger.Transactor = (*Engine)(nil)

// read runs fn outside of a transaction. With a replica configured and
// ledger.WithEventualConsistency on ctx, pgx reads go to the replica.
func (e *Engine) read(ctx context.Context, action string, fn func(ctx context.Context, s session) error) error {
	start := time.Now()

	ctx, span := e.startTraceSpan(ctx, spanNameRead, map[string]string{
		spanAttrOperation: operationRead,
		spanAttrAction:    action,
	})

	err := fn(ctx, session{engine: e, q: e.db})

	status := statusSuccess
	if err != nil {
		err = e.classifyStatementError(err)
		status = statusError
		e.recordErrorMetrics(ctx, operationRead, errorTypeOf(err))
	}

	duration := time.Since(start)
	e.recordDurationMetrics(ctx, metricQueryDuration, duration, operationRead, status)
	e.finishTraceSpan(span, status, map[string]string{spanAttrDurationMS: formatMS(duration)})

	return err
}

func (s session) titlesWithOpenLoans() *goqu.SelectDataset {
	columns := append([]any{}, titleColumns...)
	columns = append(columns, openLoansSubquery(s.dialect(), "title_id", goqu.I(tableTitles+".id")).As(aliasOpenLoans))

	return s.dialect().From(tableTitles).Select(columns...)
}

func scanTitleRecord(rows adapters.DBRows) (ledger.TitleRecord, error) {
	var openLoans int64

	title, err := scanTitle(rows, &openLoans)
	if err != nil {
		return ledger.TitleRecord{}, err
	}

	return ledger.TitleRecord{Title: title, OpenLoans: int(openLoans)}, nil
}

// ListTitles returns catalog entries with their live open-loan counts.
func (e *Engine) ListTitles(ctx context.Context, filter ledger.TitleFilter) ([]ledger.TitleRecord, error) {
	records := make([]ledger.TitleRecord, 0)

	err := e.read(ctx, "list titles", func(ctx context.Context, s session) error {
		ds := s.titlesWithOpenLoans()

		if key := SearchKey(filter.Search); key != "" {
			ds = ds.Where(goqu.C("search_key").Like("%" + key + "%"))
		}

		if filter.NewestFirst {
			ds = ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc())
		} else {
			ds = ds.Order(goqu.C("title").Asc(), goqu.C("id").Asc())
		}

		return s.query(ctx, "list titles", page(ds, filter.Limit, filter.Offset), func(rows adapters.DBRows) error {
			record, err := scanTitleRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, record)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (e *Engine) GetTitle(ctx context.Context, titleID core.TitleID) (ledger.TitleRecord, error) {
	var record ledger.TitleRecord
	found := false

	err := e.read(ctx, "get title", func(ctx context.Context, s session) error {
		ds := s.titlesWithOpenLoans().Where(goqu.C("id").Eq(titleID))

		return s.query(ctx, "get title", ds, func(rows adapters.DBRows) error {
			var err error
			record, err = scanTitleRecord(rows)
			found = err == nil
			return err
		})
	})
	if err != nil {
		return ledger.TitleRecord{}, err
	}

	if !found {
		return ledger.TitleRecord{}, ledger.ErrEntityNotFound
	}

	return record, nil
}

func (s session) patronsWithOpenLoans() *goqu.SelectDataset {
	columns := append([]any{}, patronColumns...)
	columns = append(columns, openLoansSubquery(s.dialect(), "patron_id", goqu.I(tablePatrons+".id")).As(aliasOpenLoans))

	return s.dialect().From(tablePatrons).Select(columns...)
}

func scanPatronRecord(rows adapters.DBRows) (ledger.PatronRecord, error) {
	var openLoans int64

	patron, err := scanPatron(rows, &openLoans)
	if err != nil {
		return ledger.PatronRecord{}, err
	}

	return ledger.PatronRecord{Patron: patron, OpenLoans: int(openLoans)}, nil
}

func (e *Engine) ListPatrons(ctx context.Context, filter ledger.PatronFilter) ([]ledger.PatronRecord, error) {
	records := make([]ledger.PatronRecord, 0)

	err := e.read(ctx, "list patrons", func(ctx context.Context, s session) error {
		ds := s.patronsWithOpenLoans().Order(goqu.C("id").Asc())

		if filter.Approved != nil {
			ds = ds.Where(goqu.C("approved").Eq(*filter.Approved))
		}

		if filter.Active != nil {
			ds = ds.Where(goqu.C("active").Eq(*filter.Active))
		}

		return s.query(ctx, "list patrons", page(ds, filter.Limit, filter.Offset), func(rows adapters.DBRows) error {
			record, err := scanPatronRecord(rows)
			if err != nil {
				return err
			}
			records = append(records, record)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (e *Engine) GetPatron(ctx context.Context, patronID core.PatronID) (ledger.PatronRecord, error) {
	var record ledger.PatronRecord
	found := false

	err := e.read(ctx, "get patron", func(ctx context.Context, s session) error {
		ds := s.patronsWithOpenLoans().Where(goqu.C("id").Eq(patronID))

		return s.query(ctx, "get patron", ds, func(rows adapters.DBRows) error {
			var err error
			record, err = scanPatronRecord(rows)
			found = err == nil
			return err
		})
	})
	if err != nil {
		return ledger.PatronRecord{}, err
	}

	if !found {
		return ledger.PatronRecord{}, ledger.ErrEntityNotFound
	}

	return record, nil
}

func (e *Engine) ListLoans(ctx context.Context, filter ledger.LoanFilter) ([]core.Loan, error) {
	loans := make([]core.Loan, 0)

	err := e.read(ctx, "list loans", func(ctx context.Context, s session) error {
		ds := s.dialect().From(tableLoans).Select(loanColumns...)

		if filter.PatronID != nil {
			ds = ds.Where(goqu.C("patron_id").Eq(*filter.PatronID))
		}

		if filter.TitleID != nil {
			ds = ds.Where(goqu.C("title_id").Eq(*filter.TitleID))
		}

		if filter.Status != nil {
			ds = ds.Where(goqu.C("status").Eq(string(*filter.Status)))
		}

		if filter.DueBefore != nil {
			ds = ds.Where(
				goqu.C("status").Eq(string(core.LoanStatusOpen)),
				goqu.C("due_at").Lt(core.ToOccurredAt(*filter.DueBefore)),
			)
		}

		if filter.NewestFirst {
			ds = ds.Order(goqu.C("borrowed_at").Desc(), goqu.C("id").Desc())
		} else {
			ds = ds.Order(goqu.C("borrowed_at").Asc(), goqu.C("id").Asc())
		}

		return s.query(ctx, "list loans", page(ds, filter.Limit, 0), func(rows adapters.DBRows) error {
			loan, err := scanLoan(rows)
			if err != nil {
				return err
			}
			loans = append(loans, loan)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (e *Engine) GetLoan(ctx context.Context, loanID core.LoanID) (core.Loan, error) {
	var loan core.Loan
	found := false

	err := e.read(ctx, "get loan", func(ctx context.Context, s session) error {
		ds := s.dialect().From(tableLoans).Select(loanColumns...).Where(goqu.C("id").Eq(loanID))

		return s.query(ctx, "get loan", ds, func(rows adapters.DBRows) error {
			var err error
			loan, err = scanLoan(rows)
			found = err == nil
			return err
		})
	})
	if err != nil {
		return core.Loan{}, err
	}

	if !found {
		return core.Loan{}, ledger.ErrEntityNotFound
	}

	return loan, nil
}

func (e *Engine) ListReservations(ctx context.Context, filter ledger.ReservationFilter) ([]core.Reservation, error) {
	reservations := make([]core.Reservation, 0)

	err := e.read(ctx, "list reservations", func(ctx context.Context, s session) error {
		ds := s.dialect().From(tableReservations).Select(reservationColumns...)

		if filter.PatronID != nil {
			ds = ds.Where(goqu.C("patron_id").Eq(*filter.PatronID))
		}

		if filter.TitleID != nil {
			ds = ds.Where(goqu.C("title_id").Eq(*filter.TitleID))
		}

		if filter.Status != nil {
			ds = ds.Where(goqu.C("status").Eq(string(*filter.Status)))
		}

		if filter.NewestFirst {
			ds = ds.Order(goqu.C("reserved_at").Desc(), goqu.C("id").Desc())
		} else {
			ds = ds.Order(goqu.C("reserved_at").Asc(), goqu.C("id").Asc())
		}

		return s.query(ctx, "list reservations", page(ds, filter.Limit, 0), func(rows adapters.DBRows) error {
			reservation, err := scanReservation(rows)
			if err != nil {
				return err
			}
			reservations = append(reservations, reservation)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (e *Engine) GetReservation(ctx context.Context, reservationID core.ReservationID) (core.Reservation, error) {
	var reservation core.Reservation
	found := false

	err := e.read(ctx, "get reservation", func(ctx context.Context, s session) error {
		ds := s.dialect().From(tableReservations).Select(reservationColumns...).Where(goqu.C("id").Eq(reservationID))

		return s.query(ctx, "get reservation", ds, func(rows adapters.DBRows) error {
			var err error
			reservation, err = scanReservation(rows)
			found = err == nil
			return err
		})
	})
	if err != nil {
		return core.Reservation{}, err
	}

	if !found {
		return core.Reservation{}, ledger.ErrEntityNotFound
	}

	return reservation, nil
}

// CirculationCounts computes the headline numbers in one statement so they are mutually consistent.
func (e *Engine) CirculationCounts(ctx context.Context, now time.Time) (ledger.Counts, error) {
	var counts ledger.Counts

	err := e.read(ctx, "circulation counts", func(ctx context.Context, s session) error {
		d := s.dialect()
		at := core.ToOccurredAt(now)
		countAll := func(table string, where ...exp.Expression) *goqu.SelectDataset {
			return d.From(table).Select(goqu.COUNT(goqu.Star())).Where(where...)
		}

		ds := d.Select(
			countAll(tableTitles).As("titles"),
			countAll(tablePatrons).As("patrons"),
			countAll(tableLoans, goqu.C("status").Eq(string(core.LoanStatusOpen))).As("open_loans"),
			countAll(tableLoans,
				goqu.C("status").Eq(string(core.LoanStatusOpen)),
				goqu.C("due_at").Lt(at),
			).As("overdue_loans"),
			countAll(tableReservations,
				goqu.C("status").Eq(string(core.ReservationStatusActive)),
				goqu.C("expires_at").Gte(at),
			).As("active_reservations"),
			countAll(tableReservations).As("reservations"),
			d.From(tableReservations).Select(goqu.COUNT(goqu.DISTINCT("patron_id"))).As("reserving_patrons"),
		)

		return s.query(ctx, "circulation counts", ds, func(rows adapters.DBRows) error {
			var titles, patrons, openLoans, overdue, active, reservations, reserving int64

			if err := rows.Scan(&titles, &patrons, &openLoans, &overdue, &active, &reservations, &reserving); err != nil {
				return err
			}

			counts = ledger.Counts{
				Titles:             int(titles),
				Patrons:            int(patrons),
				OpenLoans:          int(openLoans),
				OverdueLoans:       int(overdue),
				ActiveReservations: int(active),
				Reservations:       int(reservations),
				ReservingPatrons:   int(reserving),
			}

			return nil
		})
	})
	if err != nil {
		return ledger.Counts{}, err
	}

	return counts, nil
}

// MostReservedTitles ranks titles by the number of reservations ever placed on them.
func (e *Engine) MostReservedTitles(ctx context.Context, limit int) ([]ledger.ReservedTitleCount, error) {
	ranking := make([]ledger.ReservedTitleCount, 0)

	err := e.read(ctx, "most reserved titles", func(ctx context.Context, s session) error {
		columns := make([]any, 0, len(titleColumns)+1)
		for _, column := range titleColumns {
			columns = append(columns, goqu.I(tableTitles+"."+column.(string)))
		}
		columns = append(columns, goqu.COUNT(goqu.I("r.id")).As(aliasReservations))

		ds := s.dialect().From(tableTitles).
			Join(goqu.T(tableReservations).As("r"), goqu.On(goqu.I("r.title_id").Eq(goqu.I(tableTitles+".id")))).
			Select(columns...).
			GroupBy(goqu.I(tableTitles + ".id")).
			Order(goqu.C(aliasReservations).Desc(), goqu.I(tableTitles+".id").Asc())

		return s.query(ctx, "most reserved titles", page(ds, limit, 0), func(rows adapters.DBRows) error {
			var reservations int64

			title, err := scanTitle(rows, &reservations)
			if err != nil {
				return err
			}
			ranking = append(ranking, ledger.ReservedTitleCount{Title: title, Reservations: int(reservations)})

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return ranking, nil
}

// ListAuditEntries returns audit entries, newest first.
func (e *Engine) ListAuditEntries(ctx context.Context, filter ledger.AuditFilter) ([]core.AuditEntry, error) {
	entries := make([]core.AuditEntry, 0)

	err := e.read(ctx, "list audit entries", func(ctx context.Context, s session) error {
		ds := s.dialect().From(tableAuditLog).
			Select(auditColumns...).
			Order(goqu.C("id").Desc())

		if filter.EntityType != nil {
			ds = ds.Where(goqu.C("entity_type").Eq(string(*filter.EntityType)))
		}

		if filter.EntityID != nil {
			ds = ds.Where(goqu.C("entity_id").Eq(*filter.EntityID))
		}

		return s.query(ctx, "list audit entries", page(ds, filter.Limit, filter.Offset), func(rows adapters.DBRows) error {
			entry, err := scanAuditEntry(rows)
			if err != nil {
				return err
			}
			entries = append(entries, entry)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
