// Package sqlengine provides the relational implementation of the ledger interfaces.
//
// The same goqu-built statements run on PostgreSQL and on an embedded SQLite database,
// through one of several database adapters (pgx, sql.DB, sqlx).
//
// Key features:
//   - Serializable transactions with row locks on PostgreSQL, IMMEDIATE transactions on SQLite
//   - Serialization failures, deadlocks and busy errors surface as ledger.ErrConcurrencyConflict
//   - Audit entries written inside a savepoint so they never abort a transaction
//   - Optional read replica for eventual-consistency reads (pgx only)
//   - Accent-insensitive catalog search through a persisted search key
//   - Logging, metrics and tracing through the dependency-free ledger interfaces
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	engine, _ := sqlengine.NewEngineFromPGXPool(db, sqlengine.WithLogger(slog.Default()))
//
//	db, _ := sql.Open("sqlite", "file:circulation.db?_txlock=immediate")
//	engine, _ := sqlengine.NewEngineFromSQLDB(db, sqlengine.WithDialect(sqlengine.DialectSQLite))
//
//	_ = engine.EnsureSchema(ctx)
//	err := engine.WithinTransaction(ctx, func(ctx context.Context, tx ledger.Tx) error {
//		title, err := tx.LockTitle(ctx, titleID)
//		...
//	})
package sqlengine
