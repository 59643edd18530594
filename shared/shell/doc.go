// Package shell is the imperative shell around the circulation rules in shared/core.
//
// It owns everything a command handler needs besides the pure Decide functions:
// retrying transactions on concurrency conflicts, applying decided domain events to the
// ledger, writing the audit trail, and the observability helpers shared by the
// command and query wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
