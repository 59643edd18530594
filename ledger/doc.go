// Package ledger defines the storage contract of the circulation tracker.
//
// Command handlers run their whole read-check-write sequence through Transactor.WithinTransaction
// and the Tx it hands out; the row-locking lookups on Tx are what keep availability and quota
// checks isolated from concurrent operations on the same title or patron. Query handlers use
// Reader, which may be served from a replica when the context was marked with WithEventualConsistency.
//
// The package also holds the dependency-free observability interfaces shared by the store
// implementation in sqlengine and by the handlers in the shell.
package ledger
