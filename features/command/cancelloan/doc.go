// Package cancelloan implements the Cancel Loan use case.
//
// An administrative cancellation ends an open loan with the same stored outcome as a return,
// and runs the same queue promotion. Only the audit trail tells the two apart.
package cancelloan
