package config

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine"
)

// OpenEngine connects to the configured database and returns a ready engine with its schema in place.
// The returned close function releases the connections.
func OpenEngine(ctx context.Context, cfg Config, options ...sqlengine.Option) (*sqlengine.Engine, func(), error) {
	var (
		engine  *sqlengine.Engine
		closeFn func()
		err     error
	)

	switch cfg.Driver {
	case DriverPGX:
		engine, closeFn, err = openPGXEngine(ctx, cfg, options...)

	case DriverSQL:
		db, openErr := OpenPostgresSQLDB(ctx, cfg.DSN)
		if openErr != nil {
			return nil, nil, openErr
		}
		closeFn = func() { _ = db.Close() }
		engine, err = sqlengine.NewEngineFromSQLDB(db, options...)

	case DriverSQLX:
		db, openErr := OpenPostgresSQLX(ctx, cfg.DSN)
		if openErr != nil {
			return nil, nil, openErr
		}
		closeFn = func() { _ = db.Close() }
		engine, err = sqlengine.NewEngineFromSQLX(db, options...)

	default:
		db, openErr := OpenSQLiteDB(ctx, cfg.DSN)
		if openErr != nil {
			return nil, nil, openErr
		}
		closeFn = func() { _ = db.Close() }
		engine, err = sqlengine.NewEngineFromSQLDB(db, append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite)}, options...)...)
	}

	if err != nil {
		if closeFn != nil {
			closeFn()
		}
		return nil, nil, err
	}

	if err = engine.EnsureSchema(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}

	return engine, closeFn, nil
}

func openPGXEngine(ctx context.Context, cfg Config, options ...sqlengine.Option) (*sqlengine.Engine, func(), error) {
	primary, err := OpenPGXPool(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}

	if cfg.ReplicaDSN == "" {
		engine, engineErr := sqlengine.NewEngineFromPGXPool(primary, options...)
		return engine, primary.Close, engineErr
	}

	replica, err := OpenPGXPool(ctx, cfg.ReplicaDSN)
	if err != nil {
		primary.Close()
		return nil, nil, err
	}

	closeFn := func() {
		replica.Close()
		primary.Close()
	}

	engine, err := sqlengine.NewEngineFromPGXPoolAndReplica(primary, replica, options...)

	return engine, closeFn, err
}
