package core

import "errors"

// Domain failures. Every command reports at most one of these, the first precondition that did not hold.
var (
	ErrNotFound             = errors.New("not found")
	ErrPatronNotEligible    = errors.New("patron is not eligible to transact")
	ErrNoCopiesAvailable    = errors.New("no copies available")
	ErrLoanLimitExceeded    = errors.New("loan limit exceeded")
	ErrDuplicateReservation = errors.New("patron already holds an active reservation for this title")
	ErrAlreadyReturned      = errors.New("loan is already returned")
	ErrAlreadyTerminal      = errors.New("reservation is no longer active")
	ErrConflict             = errors.New("conflict with existing state")
	ErrInvalidInput         = errors.New("invalid input")
)

// IsDomainError reports whether err is one of the domain failures above.
func IsDomainError(err error) bool {
	for _, domainErr := range []error{
		ErrNotFound,
		ErrPatronNotEligible,
		ErrNoCopiesAvailable,
		ErrLoanLimitExceeded,
		ErrDuplicateReservation,
		ErrAlreadyReturned,
		ErrAlreadyTerminal,
		ErrConflict,
		ErrInvalidInput,
	} {
		if errors.Is(err, domainErr) {
			return true
		}
	}

	return false
}

// Failure wraps a domain sentinel with the concrete reason, keeping errors.Is usable on the result.
func Failure(sentinel error, reason string) error {
	return errors.Join(sentinel, errors.New(reason))
}
