// Package returnloan implements the Return Loan use case.
//
// Returning a copy closes the loan and immediately offers the released copy to the head of the
// title's reservation queue. Reservations that expired while waiting are marked expired on the way.
// The promoted patron gets the loan even if they are at their quota or no longer active.
package returnloan
