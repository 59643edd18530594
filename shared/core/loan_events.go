package core

import (
	"time"
)

const (
	// LoanOpenedEventType is the event type identifier.
	LoanOpenedEventType = "LoanOpened"

	// LoanReturnedEventType is the event type identifier.
	LoanReturnedEventType = "LoanReturned"

	// LoanCanceledEventType is the event type identifier.
	LoanCanceledEventType = "LoanCanceled"

	// LoanExtendedEventType is the event type identifier.
	LoanExtendedEventType = "LoanExtended"
)

// LoanOpened represents a copy handed to a patron, by borrow or by promotion of a reservation.
type LoanOpened struct {
	Loan       Loan       `json:"loan"`
	OccurredAt OccurredAt `json:"occurred_at"`
}

// BuildLoanOpened creates a new LoanOpened event.
func BuildLoanOpened(loan Loan, occurredAt time.Time) LoanOpened {
	return LoanOpened{
		Loan:       loan,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanOpened) EventType() string { return LoanOpenedEventType }

// HasOccurredAt returns when this event occurred.
func (e LoanOpened) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityLoan.
func (e LoanOpened) EntityType() EntityType { return EntityLoan }

// EntityID returns the stored loan id.
func (e LoanOpened) EntityID() int64 { return e.Loan.ID }

// LoanReturned represents a copy coming back from the patron.
type LoanReturned struct {
	Loan       Loan       `json:"loan"`
	OccurredAt OccurredAt `json:"occurred_at"`
}

// BuildLoanReturned creates a new LoanReturned event carrying the closed loan.
func BuildLoanReturned(loan Loan, occurredAt time.Time) LoanReturned {
	return LoanReturned{
		Loan:       loan.Returned(occurredAt),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanReturned) EventType() string { return LoanReturnedEventType }

// HasOccurredAt returns when this event occurred.
func (e LoanReturned) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityLoan.
func (e LoanReturned) EntityType() EntityType { return EntityLoan }

// EntityID returns the loan id.
func (e LoanReturned) EntityID() int64 { return e.Loan.ID }

// LoanCanceled represents an administrative interruption of an open loan.
// The stored outcome is the same as a return.
type LoanCanceled struct {
	Loan       Loan       `json:"loan"`
	OccurredAt OccurredAt `json:"occurred_at"`
}

// BuildLoanCanceled creates a new LoanCanceled event carrying the closed loan.
func BuildLoanCanceled(loan Loan, occurredAt time.Time) LoanCanceled {
	return LoanCanceled{
		Loan:       loan.Returned(occurredAt),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanCanceled) EventType() string { return LoanCanceledEventType }

// HasOccurredAt returns when this event occurred.
func (e LoanCanceled) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityLoan.
func (e LoanCanceled) EntityType() EntityType { return EntityLoan }

// EntityID returns the loan id.
func (e LoanCanceled) EntityID() int64 { return e.Loan.ID }

// LoanExtended represents a pushed-back due date.
type LoanExtended struct {
	LoanID        LoanID     `json:"loan_id"`
	PreviousDueAt time.Time  `json:"previous_due_at"`
	DueAt         time.Time  `json:"due_at"`
	OccurredAt    OccurredAt `json:"occurred_at"`
}

// BuildLoanExtended creates a new LoanExtended event. The extension is additive from the current due date.
func BuildLoanExtended(loan Loan, days int, occurredAt time.Time) LoanExtended {
	return LoanExtended{
		LoanID:        loan.ID,
		PreviousDueAt: loan.DueAt,
		DueAt:         ToOccurredAt(loan.DueAt.Add(Days(days))),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanExtended) EventType() string { return LoanExtendedEventType }

// HasOccurredAt returns when this event occurred.
func (e LoanExtended) HasOccurredAt() time.Time { return e.OccurredAt }

// EntityType returns EntityLoan.
func (e LoanExtended) EntityType() EntityType { return EntityLoan }

// EntityID returns the loan id.
func (e LoanExtended) EntityID() int64 { return e.LoanID }
