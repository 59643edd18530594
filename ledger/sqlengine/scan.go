package sqlengine

import (
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine/internal/adapters"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// dbTime scans timestamps from drivers that return time.Time (pgx, lib/pq) as well as from
// SQLite, where they are stored as fixed-width RFC 3339 text.
type dbTime struct {
	t time.Time
}

func (d *dbTime) Scan(src any) error {
	t, err := parseDBTime(src)
	if err != nil {
		return err
	}

	if t == nil {
		return fmt.Errorf("unexpected NULL timestamp")
	}

	d.t = *t

	return nil
}

// nullDBTime is the nullable variant of dbTime.
type nullDBTime struct {
	t *time.Time
}

func (d *nullDBTime) Scan(src any) error {
	t, err := parseDBTime(src)
	if err != nil {
		return err
	}

	d.t = t

	return nil
}

func parseDBTime(src any) (*time.Time, error) {
	var parsed time.Time

	switch v := src.(type) {
	case nil:
		return nil, nil
	case time.Time:
		parsed = v
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, err
		}
		parsed = t
	case []byte:
		t, err := time.Parse(time.RFC3339Nano, string(v))
		if err != nil {
			return nil, err
		}
		parsed = t
	default:
		return nil, fmt.Errorf("cannot scan %T into a timestamp", src)
	}

	parsed = core.ToOccurredAt(parsed)

	return &parsed, nil
}

// nullable converts an optional value into an explicit SQL NULL for goqu records.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}

	return *v
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return core.ToOccurredAt(*t)
}

var titleColumns = []any{
	"id", "title", "author", "isbn", "publisher", "publication_year", "language", "category", "total_copies", "created_at",
}

func scanTitle(rows adapters.DBRows, extra ...any) (core.Title, error) {
	var title core.Title
	var createdAt dbTime

	dest := []any{
		&title.ID, &title.Title, &title.Author, &title.ISBN, &title.Publisher, &title.PublicationYear,
		&title.Language, &title.Category, &title.TotalCopies, &createdAt,
	}

	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return core.Title{}, err
	}

	title.CreatedAt = createdAt.t

	return title, nil
}

var patronColumns = []any{
	"id", "name", "email", "card_number", "affiliation", "phone", "registered_at", "approved", "approved_at", "active", "quota",
}

func scanPatron(rows adapters.DBRows, extra ...any) (core.Patron, error) {
	var patron core.Patron
	var registeredAt dbTime
	var approvedAt nullDBTime

	dest := []any{
		&patron.ID, &patron.Name, &patron.Email, &patron.CardNumber, &patron.Affiliation, &patron.Phone,
		&registeredAt, &patron.Approved, &approvedAt, &patron.Active, &patron.Quota,
	}

	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return core.Patron{}, err
	}

	patron.RegisteredAt = registeredAt.t
	patron.ApprovedAt = approvedAt.t

	return patron, nil
}

var loanColumns = []any{
	"id", "patron_id", "title_id", "reservation_id", "borrowed_at", "due_at", "status", "returned_at",
}

func scanLoan(rows adapters.DBRows) (core.Loan, error) {
	var loan core.Loan
	var status string
	var borrowedAt, dueAt dbTime
	var returnedAt nullDBTime

	err := rows.Scan(
		&loan.ID, &loan.PatronID, &loan.TitleID, &loan.ReservationID,
		&borrowedAt, &dueAt, &status, &returnedAt,
	)
	if err != nil {
		return core.Loan{}, err
	}

	loan.Status = core.LoanStatus(status)
	loan.BorrowedAt = borrowedAt.t
	loan.DueAt = dueAt.t
	loan.ReturnedAt = returnedAt.t

	return loan, nil
}

var reservationColumns = []any{
	"id", "patron_id", "title_id", "reserved_at", "expires_at", "status",
}

func scanReservation(rows adapters.DBRows) (core.Reservation, error) {
	var reservation core.Reservation
	var status string
	var reservedAt, expiresAt dbTime

	err := rows.Scan(
		&reservation.ID, &reservation.PatronID, &reservation.TitleID,
		&reservedAt, &expiresAt, &status,
	)
	if err != nil {
		return core.Reservation{}, err
	}

	reservation.Status = core.ReservationStatus(status)
	reservation.ReservedAt = reservedAt.t
	reservation.ExpiresAt = expiresAt.t

	return reservation, nil
}

var auditColumns = []any{
	"id", "actor_type", "actor_id", "action", "entity_type", "entity_id", "payload", "created_at",
}

func scanAuditEntry(rows adapters.DBRows) (core.AuditEntry, error) {
	var entry core.AuditEntry
	var actorType, entityType string
	var createdAt dbTime

	err := rows.Scan(
		&entry.ID, &actorType, &entry.ActorID, &entry.Action,
		&entityType, &entry.EntityID, &entry.Payload, &createdAt,
	)
	if err != nil {
		return core.AuditEntry{}, err
	}

	entry.ActorType = core.ActorRole(actorType)
	entry.EntityType = core.EntityType(entityType)
	entry.CreatedAt = createdAt.t

	return entry, nil
}
