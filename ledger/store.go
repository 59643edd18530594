package ledger

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// TxFunc is the unit of work executed inside one transaction.
type TxFunc func(ctx context.Context, tx Tx) error

// Transactor runs a unit of work as one serializable transaction.
// The work is committed if fn returns nil and rolled back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}

// Tx is the set of reads and writes available inside a transaction.
// Lock* lookups take a row lock where the backend supports it and return ErrEntityNotFound for missing rows.
type Tx interface {
	LockTitle(ctx context.Context, titleID core.TitleID) (core.Title, error)
	FindTitleByTitleAndAuthor(ctx context.Context, title, author string) (core.Title, bool, error)
	ISBNInUse(ctx context.Context, isbn string) (bool, error)
	InsertTitle(ctx context.Context, title core.Title) (core.TitleID, error)
	UpdateTitleCopies(ctx context.Context, titleID core.TitleID, totalCopies int) error
	DeleteTitle(ctx context.Context, titleID core.TitleID) error

	LockPatron(ctx context.Context, patronID core.PatronID) (core.Patron, error)
	EmailInUse(ctx context.Context, email string) (bool, error)
	CardNumberInUse(ctx context.Context, cardNumber string) (bool, error)
	InsertPatron(ctx context.Context, patron core.Patron) (core.PatronID, error)
	UpdatePatronApproval(ctx context.Context, patronID core.PatronID, approvedAt time.Time) error
	UpdatePatronActive(ctx context.Context, patronID core.PatronID, active bool) error

	CountOpenLoansForTitle(ctx context.Context, titleID core.TitleID) (int, error)
	CountOpenLoansForPatron(ctx context.Context, patronID core.PatronID) (int, error)
	LockLoan(ctx context.Context, loanID core.LoanID) (core.Loan, error)
	InsertLoan(ctx context.Context, loan core.Loan) (core.LoanID, error)
	CloseLoan(ctx context.Context, loanID core.LoanID, returnedAt time.Time) error
	UpdateLoanDueAt(ctx context.Context, loanID core.LoanID, dueAt time.Time) error

	LockReservation(ctx context.Context, reservationID core.ReservationID) (core.Reservation, error)
	ActiveReservationsForTitle(ctx context.Context, titleID core.TitleID) ([]core.Reservation, error)
	ActiveReservationForPair(ctx context.Context, patronID core.PatronID, titleID core.TitleID) (core.Reservation, bool, error)
	InsertReservation(ctx context.Context, reservation core.Reservation) (core.ReservationID, error)
	UpdateReservationStatus(ctx context.Context, reservationID core.ReservationID, status core.ReservationStatus) error
	UpdateReservationExpiresAt(ctx context.Context, reservationID core.ReservationID, expiresAt time.Time) error

	// AppendAudit writes one audit entry. A failure must not abort the surrounding transaction.
	AppendAudit(ctx context.Context, entry core.AuditEntry) error
}

// Reader serves the read views.
type Reader interface {
	ListTitles(ctx context.Context, filter TitleFilter) ([]TitleRecord, error)
	GetTitle(ctx context.Context, titleID core.TitleID) (TitleRecord, error)
	ListPatrons(ctx context.Context, filter PatronFilter) ([]PatronRecord, error)
	GetPatron(ctx context.Context, patronID core.PatronID) (PatronRecord, error)
	ListLoans(ctx context.Context, filter LoanFilter) ([]core.Loan, error)
	GetLoan(ctx context.Context, loanID core.LoanID) (core.Loan, error)
	ListReservations(ctx context.Context, filter ReservationFilter) ([]core.Reservation, error)
	GetReservation(ctx context.Context, reservationID core.ReservationID) (core.Reservation, error)
	CirculationCounts(ctx context.Context, now time.Time) (Counts, error)
	MostReservedTitles(ctx context.Context, limit int) ([]ReservedTitleCount, error)
	ListAuditEntries(ctx context.Context, filter AuditFilter) ([]core.AuditEntry, error)
	Ping(ctx context.Context) error
}

// TitleRecord is a title together with its live open-loan count.
type TitleRecord struct {
	Title     core.Title
	OpenLoans int
}

// PatronRecord is a patron together with its live open-loan count.
type PatronRecord struct {
	Patron    core.Patron
	OpenLoans int
}

// ReservedTitleCount is one row of the most-reserved ranking.
type ReservedTitleCount struct {
	Title        core.Title
	Reservations int
}

// Counts are the headline numbers of the circulation desk.
// ActiveReservations only counts reservations that are not yet past their expiry at the given now.
type Counts struct {
	Titles             int
	Patrons            int
	OpenLoans          int
	OverdueLoans       int
	ActiveReservations int
	Reservations       int
	ReservingPatrons   int
}

// TitleFilter narrows ListTitles. Search matches title or author ignoring case and accents.
type TitleFilter struct {
	Search      string
	NewestFirst bool
	Limit       int
	Offset      int
}

// PatronFilter narrows ListPatrons.
type PatronFilter struct {
	Approved *bool
	Active   *bool
	Limit    int
	Offset   int
}

// LoanFilter narrows ListLoans. DueBefore selects open loans whose due date has passed.
type LoanFilter struct {
	PatronID    *core.PatronID
	TitleID     *core.TitleID
	Status      *core.LoanStatus
	DueBefore   *time.Time
	NewestFirst bool
	Limit       int
}

// ReservationFilter narrows ListReservations. Status compares the stored status.
// Results are in queue order unless NewestFirst is set.
type ReservationFilter struct {
	PatronID    *core.PatronID
	TitleID     *core.TitleID
	Status      *core.ReservationStatus
	NewestFirst bool
	Limit       int
}

// AuditFilter narrows ListAuditEntries. Entries come newest first.
type AuditFilter struct {
	EntityType *core.EntityType
	EntityID   *int64
	Limit      int
	Offset     int
}
