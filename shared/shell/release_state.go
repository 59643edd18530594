package shell

import (
	"context"
	"errors"
	"slices"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// ReleaseState is what a command needs to close a loan and promote the waiting queue of its title.
// OpenLoans still includes the loan being closed.
// Patrons holds the queued patrons that still exist, keyed by id.
type ReleaseState struct {
	Loan      core.Loan
	LoanFound bool
	Title     core.Title
	OpenLoans int
	Queue     []core.Reservation
	Patrons   map[core.PatronID]core.Patron
}

// OpenLoansAfterRelease is the title's open-loan count once the loan is closed.
func (s ReleaseState) OpenLoansAfterRelease() int {
	if s.Loan.IsOpen() {
		return s.OpenLoans - 1
	}

	return s.OpenLoans
}

// LoadReleaseState locks the loan and its title, reads the title's stored-active queue
// and locks every queued patron in ascending id order.
// A missing loan is reported through LoanFound, not as an error.
func LoadReleaseState(ctx context.Context, tx ledger.Tx, loanID core.LoanID) (ReleaseState, error) {
	s := ReleaseState{}

	loan, err := tx.LockLoan(ctx, loanID)
	if errors.Is(err, ledger.ErrEntityNotFound) {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	s.Loan = loan
	s.LoanFound = true

	if !loan.IsOpen() {
		return s, nil
	}

	if s.Title, err = tx.LockTitle(ctx, loan.TitleID); err != nil {
		return s, err
	}

	if s.OpenLoans, err = tx.CountOpenLoansForTitle(ctx, loan.TitleID); err != nil {
		return s, err
	}

	if s.Queue, err = tx.ActiveReservationsForTitle(ctx, loan.TitleID); err != nil {
		return s, err
	}

	if s.Patrons, err = lockQueuedPatrons(ctx, tx, s.Queue); err != nil {
		return s, err
	}

	return s, nil
}

func lockQueuedPatrons(ctx context.Context, tx ledger.Tx, queue []core.Reservation) (map[core.PatronID]core.Patron, error) {
	ids := make([]core.PatronID, 0, len(queue))
	for _, reservation := range queue {
		ids = append(ids, reservation.PatronID)
	}

	slices.Sort(ids)
	ids = slices.Compact(ids)

	patrons := make(map[core.PatronID]core.Patron, len(ids))
	for _, id := range ids {
		patron, err := tx.LockPatron(ctx, id)
		if errors.Is(err, ledger.ErrEntityNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		patrons[id] = patron
	}

	return patrons, nil
}
