// Package audittrail implements the Audit Trail query use case.
//
// Entries come newest first. The stored payload is decoded into the event it records and the
// message, causation and correlation ids of the command that caused it.
package audittrail
