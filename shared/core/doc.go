// Package core contains the circulation domain of a lending library:
// titles, patrons, loans, reservations and the rules that keep them consistent.
//
// Everything in here is pure. Decide functions in the feature packages take a State loaded
// by the shell and return a DecisionResult holding DomainEvents; the shell applies those
// events to the store inside a single transaction and writes one audit entry per event.
//
// Availability is never stored. AvailableCopies derives it from the live open-loan count,
// and reservation expiry is evaluated lazily against a single "now" per operation.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
