package sqlengine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine/internal/adapters"
)

// sqlBuilder is satisfied by all goqu datasets.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

// session runs statements either against the pool or inside a transaction.
type session struct {
	engine *Engine
	q      adapters.Querier
}

func (s session) dialect() goqu.DialectWrapper {
	return s.engine.dialect.builder
}

func (s session) toSQL(ctx context.Context, action string, ds sqlBuilder) (string, error) {
	sqlQuery, _, err := ds.ToSQL()
	if err != nil {
		s.engine.logError(ctx, logMsgBuildQueryFailed, err, logAttrAction, action)
		return "", errors.Join(ledger.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// query runs a select and hands every row to scan.
func (s session) query(ctx context.Context, action string, ds sqlBuilder, scan func(rows adapters.DBRows) error) error {
	sqlQuery, err := s.toSQL(ctx, action, ds)
	if err != nil {
		return err
	}

	start := time.Now()

	rows, err := s.q.Query(ctx, sqlQuery)
	if err != nil {
		s.engine.logError(ctx, logMsgDBQueryFailed, err, logAttrAction, action, logAttrQuery, sqlQuery)
		return errors.Join(ledger.ErrQueryingFailed, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.engine.logError(ctx, logMsgCloseRowsFailed, closeErr, logAttrAction, action)
		}
	}()

	for rows.Next() {
		if err := scan(rows); err != nil {
			s.engine.logError(ctx, logMsgScanRowFailed, err, logAttrAction, action)
			return errors.Join(ledger.ErrScanningRowFailed, err)
		}
	}

	if err := rows.Err(); err != nil {
		s.engine.logError(ctx, logMsgDBQueryFailed, err, logAttrAction, action, logAttrQuery, sqlQuery)
		return errors.Join(ledger.ErrQueryingFailed, err)
	}

	duration := time.Since(start)
	s.engine.logQueryWithDuration(ctx, sqlQuery, action, duration)
	s.engine.recordDurationMetrics(ctx, metricQueryDuration, duration, action, statusSuccess)

	return nil
}

// exec runs a write and returns the number of affected rows.
func (s session) exec(ctx context.Context, action string, ds sqlBuilder) (int64, error) {
	sqlQuery, err := s.toSQL(ctx, action, ds)
	if err != nil {
		return 0, err
	}

	return s.execRaw(ctx, action, sqlQuery)
}

func (s session) execRaw(ctx context.Context, action string, sqlQuery string) (int64, error) {
	start := time.Now()

	result, err := s.q.Exec(ctx, sqlQuery)
	if err != nil {
		s.engine.logError(ctx, logMsgDBExecFailed, err, logAttrAction, action, logAttrQuery, sqlQuery)
		return 0, errors.Join(ledger.ErrWritingFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(ledger.ErrWritingFailed, err)
	}

	duration := time.Since(start)
	s.engine.logQueryWithDuration(ctx, sqlQuery, action, duration)
	s.engine.recordDurationMetrics(ctx, metricQueryDuration, duration, action, statusSuccess)

	return rowsAffected, nil
}

// execOne runs an update or delete that must hit exactly one row.
func (s session) execOne(ctx context.Context, action string, ds sqlBuilder) error {
	rowsAffected, err := s.exec(ctx, action, ds)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ledger.ErrEntityNotFound
	}

	return nil
}

// insertReturningID inserts one row and returns its generated id.
func (s session) insertReturningID(ctx context.Context, action string, ds *goqu.InsertDataset) (int64, error) {
	var id int64
	found := false

	err := s.query(ctx, action, ds.Returning(goqu.C("id")), func(rows adapters.DBRows) error {
		found = true
		return rows.Scan(&id)
	})
	if err != nil {
		// A failing INSERT ... RETURNING is a write failure, whichever call surfaced it.
		if errors.Is(err, ledger.ErrQueryingFailed) {
			return 0, errors.Join(ledger.ErrWritingFailed, err)
		}

		return 0, err
	}

	if !found {
		return 0, errors.Join(ledger.ErrWritingFailed, errors.New("insert returned no id"))
	}

	return id, nil
}

// count runs a select that yields a single integer.
func (s session) count(ctx context.Context, action string, ds sqlBuilder) (int, error) {
	var n int64

	err := s.query(ctx, action, ds, func(rows adapters.DBRows) error {
		return rows.Scan(&n)
	})
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// exists reports whether the select yields at least one row.
func (s session) exists(ctx context.Context, action string, ds *goqu.SelectDataset) (bool, error) {
	n, err := s.count(ctx, action, ds.Select(goqu.COUNT(goqu.Star())))
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// forUpdate adds a row lock where the backend has one.
func (s session) forUpdate(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if s.engine.dialect.rowLocks {
		return ds.ForUpdate(exp.Wait)
	}

	return ds
}

// page applies limit and offset. An offset without a limit pages through the rest of the rows.
func page(ds *goqu.SelectDataset, limit, offset int) *goqu.SelectDataset {
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	if offset > 0 {
		if limit <= 0 {
			ds = ds.Limit(math.MaxInt32)
		}
		ds = ds.Offset(uint(offset))
	}

	return ds
}

func openLoansSubquery(d goqu.DialectWrapper, column string, outer exp.IdentifierExpression) *goqu.SelectDataset {
	return d.From(goqu.T(tableLoans).As("open_loan")).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.I("open_loan."+column).Eq(outer),
			goqu.I("open_loan.status").Eq("open"),
		)
}
