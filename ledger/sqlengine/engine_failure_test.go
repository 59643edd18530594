package sqlengine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine/internal/adapters"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

var errConnectionLost = errors.New("connection lost")

// failingDB begins transactions fine, but every statement fails.
type failingDB struct {
	rolledBack bool
}

func (db *failingDB) Query(context.Context, string) (adapters.DBRows, error) {
	return nil, errConnectionLost
}

func (db *failingDB) Exec(context.Context, string) (adapters.DBResult, error) {
	return nil, errConnectionLost
}

func (db *failingDB) BeginTx(context.Context, adapters.TxOptions) (adapters.DBTx, error) {
	return failingTx{db: db}, nil
}

func (db *failingDB) Ping(context.Context) error {
	return nil
}

type failingTx struct {
	db *failingDB
}

func (tx failingTx) Query(ctx context.Context, query string) (adapters.DBRows, error) {
	return tx.db.Query(ctx, query)
}

func (tx failingTx) Exec(ctx context.Context, query string) (adapters.DBResult, error) {
	return tx.db.Exec(ctx, query)
}

func (tx failingTx) Commit(context.Context) error {
	return nil
}

func (tx failingTx) Rollback(context.Context) error {
	tx.db.rolledBack = true
	return nil
}

func Test_WithinTransaction_FailedStatementsMeanStoreUnavailable(t *testing.T) {
	testCases := []struct {
		description string
		fn          ledger.TxFunc
		expected    error
	}{
		{
			description: "failed read",
			fn: func(ctx context.Context, tx ledger.Tx) error {
				_, err := tx.LockTitle(ctx, 1)
				return err
			},
			expected: ledger.ErrQueryingFailed,
		},
		{
			description: "failed write",
			fn: func(ctx context.Context, tx ledger.Tx) error {
				return tx.UpdateTitleCopies(ctx, 1, 3)
			},
			expected: ledger.ErrWritingFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			db := &failingDB{}
			engine, err := newEngine(db, DialectSQLite)
			require.NoError(t, err)

			// act
			err = engine.WithinTransaction(context.Background(), tc.fn)

			// assert
			assert.ErrorIs(t, err, ledger.ErrStoreUnavailable)
			assert.ErrorIs(t, err, tc.expected)
			assert.ErrorIs(t, err, errConnectionLost)
			assert.NotErrorIs(t, err, ledger.ErrConcurrencyConflict)
			assert.True(t, db.rolledBack)
		})
	}
}

func Test_WithinTransaction_DomainErrorsPassThrough(t *testing.T) {
	// arrange
	engine, err := newEngine(&failingDB{}, DialectSQLite)
	require.NoError(t, err)
	rejection := core.Failure(core.ErrNotFound, "title 1")

	// act
	err = engine.WithinTransaction(context.Background(), func(context.Context, ledger.Tx) error {
		return rejection
	})

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, ledger.ErrStoreUnavailable)
}

func Test_Read_FailedStatementMeansStoreUnavailable(t *testing.T) {
	// arrange
	engine, err := newEngine(&failingDB{}, DialectSQLite)
	require.NoError(t, err)

	// act
	_, err = engine.GetTitle(context.Background(), 1)

	// assert
	assert.ErrorIs(t, err, ledger.ErrStoreUnavailable)
	assert.ErrorIs(t, err, ledger.ErrQueryingFailed)
}
