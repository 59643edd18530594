// Package adapters provide database adapter implementations for the SQL engine.
//
// Three connection types are supported behind one DBAdapter interface: pgxpool.Pool,
// sql.DB (lib/pq or modernc.org/sqlite) and sqlx.DB. Each adapter can also open a
// transaction exposing the same Query/Exec surface, so the engine runs identical
// interpolated SQL inside and outside transactions.
package adapters
