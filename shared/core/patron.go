package core

import "time"

// Patron is a registered library member.
type Patron struct {
	ID           PatronID   `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	CardNumber   *string    `json:"card_number,omitempty"`
	Affiliation  *string    `json:"affiliation,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	RegisteredAt time.Time  `json:"registered_at"`
	Approved     bool       `json:"approved"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	Active       bool       `json:"active"`
	Quota        int        `json:"quota"`
}

// CanTransact reports whether the patron may borrow or reserve.
func (p Patron) CanTransact() bool {
	return p.Approved && p.Active
}

// HasQuotaLeft reports whether one more open loan stays within the patron's quota.
func (p Patron) HasQuotaLeft(openLoans int) bool {
	return openLoans < p.Quota
}
