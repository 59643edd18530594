// Package oteladapters implements the ledger observability interfaces with OpenTelemetry.
//
// The daemon wires them in when CIRCULATION_OTEL is enabled; the store and the handlers only ever
// see the dependency-free interfaces of package ledger.
package oteladapters
