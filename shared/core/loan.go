package core

import (
	"fmt"
	"time"
)

// LoanStatus is the lifecycle state of a Loan.
type LoanStatus string

const (
	LoanStatusOpen     LoanStatus = "open"
	LoanStatusReturned LoanStatus = "returned"
)

// ParseLoanStatus converts external input into a LoanStatus.
func ParseLoanStatus(s string) (LoanStatus, error) {
	switch LoanStatus(s) {
	case LoanStatusOpen, LoanStatusReturned:
		return LoanStatus(s), nil
	default:
		return "", Failure(ErrInvalidInput, fmt.Sprintf("unknown loan status %q", s))
	}
}

// Loan records one copy of a title held by one patron.
// ReturnedAt is set iff Status is LoanStatusReturned.
type Loan struct {
	ID            LoanID         `json:"id"`
	PatronID      PatronID       `json:"patron_id"`
	TitleID       TitleID        `json:"title_id"`
	ReservationID *ReservationID `json:"reservation_id,omitempty"`
	BorrowedAt    time.Time      `json:"borrowed_at"`
	DueAt         time.Time      `json:"due_at"`
	Status        LoanStatus     `json:"status"`
	ReturnedAt    *time.Time     `json:"returned_at,omitempty"`
}

// OpenLoan builds a new open loan starting at now.
func OpenLoan(patronID PatronID, titleID TitleID, now time.Time, loanDays int) Loan {
	borrowedAt := ToOccurredAt(now)

	return Loan{
		PatronID:   patronID,
		TitleID:    titleID,
		BorrowedAt: borrowedAt,
		DueAt:      borrowedAt.Add(Days(loanDays)),
		Status:     LoanStatusOpen,
	}
}

// IsOpen reports whether the loan still holds a copy.
func (l Loan) IsOpen() bool {
	return l.Status == LoanStatusOpen
}

// IsOverdue reports whether the loan is open past its due date.
func (l Loan) IsOverdue(now time.Time) bool {
	return l.IsOpen() && now.After(l.DueAt)
}

// Returned gives back the loan closed at now.
func (l Loan) Returned(now time.Time) Loan {
	returnedAt := ToOccurredAt(now)
	l.Status = LoanStatusReturned
	l.ReturnedAt = &returnedAt

	return l
}
