// Package loanledger implements the Loan Ledger query use case.
//
// One query type covers the loan list with its filters, the overdue list, the recently returned
// loans and the lookup of a single loan. Overdue is evaluated against the query's now.
package loanledger
