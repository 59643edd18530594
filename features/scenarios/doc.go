// Package scenarios runs whole circulation stories across several command handlers
// against an in-process SQLite ledger.
package scenarios
