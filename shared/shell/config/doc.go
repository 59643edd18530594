// Package config provides configuration loading and database connection helpers
// for the library circulation service.
//
// Settings come from CIRCULATION_* environment variables and can be overridden by flags.
// The connection builders create pgx.Pool, sql.DB, sqlx.DB and embedded SQLite handles
// with pre-configured pool settings, and hand them to the sql engine.
//
// This package is part of the shell (infrastructure) layer.
package config
