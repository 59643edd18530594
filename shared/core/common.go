package core

import (
	"time"
)

// TitleID identifies a catalog title.
type TitleID = int64

// PatronID identifies a registered patron.
type PatronID = int64

// LoanID identifies a loan.
type LoanID = int64

// ReservationID identifies a reservation.
type ReservationID = int64

// OccurredAt represents when something happened in the domain.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision.
// All timestamps handed to the store go through here, so every backend round-trips them unchanged.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// Days converts a number of days into a duration.
func Days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// Policy holds the circulation defaults applied when a caller does not specify its own values.
type Policy struct {
	LoanDays        int
	ReservationDays int
	DefaultQuota    int
}

const (
	defaultLoanDays        = 14
	defaultReservationDays = 7
	defaultQuota           = 5
)

// DefaultPolicy returns the library's standard lending terms: 14-day loans, 7-day reservations, 5 loans per patron.
func DefaultPolicy() Policy {
	return Policy{
		LoanDays:        defaultLoanDays,
		ReservationDays: defaultReservationDays,
		DefaultQuota:    defaultQuota,
	}
}
