// Package extendloan implements the Extend Loan use case: an open loan's due date moves back by a
// number of days, counted from the current due date even when the loan is already overdue.
package extendloan
