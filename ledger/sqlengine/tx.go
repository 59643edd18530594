package sqlengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine/internal/adapters"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// transaction implements ledger.Tx on an open database transaction.
type transaction struct {
	session
}

var _ ledger.Tx = (*transaction)(nil)

func (t *transaction) selectOne(
	ctx context.Context,
	action string,
	ds *goqu.SelectDataset,
	scan func(rows adapters.DBRows) error,
) (bool, error) {
	found := false

	err := t.query(ctx, action, ds.Limit(1), func(rows adapters.DBRows) error {
		found = true
		return scan(rows)
	})

	return found, err
}

func (t *transaction) LockTitle(ctx context.Context, titleID core.TitleID) (core.Title, error) {
	var title core.Title

	ds := t.forUpdate(t.dialect().From(tableTitles).Select(titleColumns...).Where(goqu.C("id").Eq(titleID)))

	found, err := t.selectOne(ctx, "lock title", ds, func(rows adapters.DBRows) error {
		var scanErr error
		title, scanErr = scanTitle(rows)
		return scanErr
	})
	if err != nil {
		return core.Title{}, err
	}

	if !found {
		return core.Title{}, ledger.ErrEntityNotFound
	}

	return title, nil
}

func (t *transaction) FindTitleByTitleAndAuthor(ctx context.Context, title, author string) (core.Title, bool, error) {
	var existing core.Title

	ds := t.forUpdate(
		t.dialect().From(tableTitles).
			Select(titleColumns...).
			Where(goqu.C("title").Eq(title), goqu.C("author").Eq(author)).
			Order(goqu.C("id").Asc()),
	)

	found, err := t.selectOne(ctx, "find title by title and author", ds, func(rows adapters.DBRows) error {
		var scanErr error
		existing, scanErr = scanTitle(rows)
		return scanErr
	})

	return existing, found, err
}

func (t *transaction) ISBNInUse(ctx context.Context, isbn string) (bool, error) {
	return t.exists(ctx, "isbn in use", t.dialect().From(tableTitles).Where(goqu.C("isbn").Eq(isbn)))
}

func (t *transaction) InsertTitle(ctx context.Context, title core.Title) (core.TitleID, error) {
	ds := t.dialect().Insert(tableTitles).Rows(goqu.Record{
		"title":            title.Title,
		"author":           title.Author,
		"isbn":             nullable(title.ISBN),
		"publisher":        nullable(title.Publisher),
		"publication_year": nullable(title.PublicationYear),
		"language":         nullable(title.Language),
		"category":         nullable(title.Category),
		"total_copies":     title.TotalCopies,
		"search_key":       SearchKey(title.Title, title.Author),
		"created_at":       core.ToOccurredAt(title.CreatedAt),
	})

	return t.insertReturningID(ctx, "insert title", ds)
}

func (t *transaction) UpdateTitleCopies(ctx context.Context, titleID core.TitleID, totalCopies int) error {
	ds := t.dialect().Update(tableTitles).
		Set(goqu.Record{"total_copies": totalCopies}).
		Where(goqu.C("id").Eq(titleID))

	return t.execOne(ctx, "update title copies", ds)
}

// DeleteTitle removes the title together with its loan and reservation history.
func (t *transaction) DeleteTitle(ctx context.Context, titleID core.TitleID) error {
	if _, err := t.exec(ctx, "delete title loans",
		t.dialect().Delete(tableLoans).Where(goqu.C("title_id").Eq(titleID))); err != nil {
		return err
	}

	if _, err := t.exec(ctx, "delete title reservations",
		t.dialect().Delete(tableReservations).Where(goqu.C("title_id").Eq(titleID))); err != nil {
		return err
	}

	return t.execOne(ctx, "delete title", t.dialect().Delete(tableTitles).Where(goqu.C("id").Eq(titleID)))
}

func (t *transaction) LockPatron(ctx context.Context, patronID core.PatronID) (core.Patron, error) {
	var patron core.Patron

	ds := t.forUpdate(t.dialect().From(tablePatrons).Select(patronColumns...).Where(goqu.C("id").Eq(patronID)))

	found, err := t.selectOne(ctx, "lock patron", ds, func(rows adapters.DBRows) error {
		var scanErr error
		patron, scanErr = scanPatron(rows)
		return scanErr
	})
	if err != nil {
		return core.Patron{}, err
	}

	if !found {
		return core.Patron{}, ledger.ErrEntityNotFound
	}

	return patron, nil
}

func (t *transaction) EmailInUse(ctx context.Context, email string) (bool, error) {
	return t.exists(ctx, "email in use", t.dialect().From(tablePatrons).Where(goqu.C("email").Eq(email)))
}

func (t *transaction) CardNumberInUse(ctx context.Context, cardNumber string) (bool, error) {
	return t.exists(ctx, "card number in use", t.dialect().From(tablePatrons).Where(goqu.C("card_number").Eq(cardNumber)))
}

func (t *transaction) InsertPatron(ctx context.Context, patron core.Patron) (core.PatronID, error) {
	ds := t.dialect().Insert(tablePatrons).Rows(goqu.Record{
		"name":          patron.Name,
		"email":         patron.Email,
		"card_number":   nullable(patron.CardNumber),
		"affiliation":   nullable(patron.Affiliation),
		"phone":         nullable(patron.Phone),
		"registered_at": core.ToOccurredAt(patron.RegisteredAt),
		"approved":      patron.Approved,
		"approved_at":   nullableTime(patron.ApprovedAt),
		"active":        patron.Active,
		"quota":         patron.Quota,
	})

	return t.insertReturningID(ctx, "insert patron", ds)
}

func (t *transaction) UpdatePatronApproval(ctx context.Context, patronID core.PatronID, approvedAt time.Time) error {
	ds := t.dialect().Update(tablePatrons).
		Set(goqu.Record{"approved": true, "approved_at": core.ToOccurredAt(approvedAt)}).
		Where(goqu.C("id").Eq(patronID))

	return t.execOne(ctx, "approve patron", ds)
}

func (t *transaction) UpdatePatronActive(ctx context.Context, patronID core.PatronID, active bool) error {
	ds := t.dialect().Update(tablePatrons).
		Set(goqu.Record{"active": active}).
		Where(goqu.C("id").Eq(patronID))

	return t.execOne(ctx, "update patron active", ds)
}

func (t *transaction) CountOpenLoansForTitle(ctx context.Context, titleID core.TitleID) (int, error) {
	ds := t.dialect().From(tableLoans).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("title_id").Eq(titleID), goqu.C("status").Eq(string(core.LoanStatusOpen)))

	return t.count(ctx, "count open loans for title", ds)
}

func (t *transaction) CountOpenLoansForPatron(ctx context.Context, patronID core.PatronID) (int, error) {
	ds := t.dialect().From(tableLoans).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("patron_id").Eq(patronID), goqu.C("status").Eq(string(core.LoanStatusOpen)))

	return t.count(ctx, "count open loans for patron", ds)
}

func (t *transaction) LockLoan(ctx context.Context, loanID core.LoanID) (core.Loan, error) {
	var loan core.Loan

	ds := t.forUpdate(t.dialect().From(tableLoans).Select(loanColumns...).Where(goqu.C("id").Eq(loanID)))

	found, err := t.selectOne(ctx, "lock loan", ds, func(rows adapters.DBRows) error {
		var scanErr error
		loan, scanErr = scanLoan(rows)
		return scanErr
	})
	if err != nil {
		return core.Loan{}, err
	}

	if !found {
		return core.Loan{}, ledger.ErrEntityNotFound
	}

	return loan, nil
}

func (t *transaction) InsertLoan(ctx context.Context, loan core.Loan) (core.LoanID, error) {
	ds := t.dialect().Insert(tableLoans).Rows(goqu.Record{
		"patron_id":      loan.PatronID,
		"title_id":       loan.TitleID,
		"reservation_id": nullable(loan.ReservationID),
		"borrowed_at":    core.ToOccurredAt(loan.BorrowedAt),
		"due_at":         core.ToOccurredAt(loan.DueAt),
		"status":         string(loan.Status),
		"returned_at":    nullableTime(loan.ReturnedAt),
	})

	return t.insertReturningID(ctx, "insert loan", ds)
}

func (t *transaction) CloseLoan(ctx context.Context, loanID core.LoanID, returnedAt time.Time) error {
	ds := t.dialect().Update(tableLoans).
		Set(goqu.Record{"status": string(core.LoanStatusReturned), "returned_at": core.ToOccurredAt(returnedAt)}).
		Where(goqu.C("id").Eq(loanID), goqu.C("status").Eq(string(core.LoanStatusOpen)))

	return t.execOne(ctx, "close loan", ds)
}

func (t *transaction) UpdateLoanDueAt(ctx context.Context, loanID core.LoanID, dueAt time.Time) error {
	ds := t.dialect().Update(tableLoans).
		Set(goqu.Record{"due_at": core.ToOccurredAt(dueAt)}).
		Where(goqu.C("id").Eq(loanID))

	return t.execOne(ctx, "update loan due date", ds)
}

func (t *transaction) LockReservation(ctx context.Context, reservationID core.ReservationID) (core.Reservation, error) {
	var reservation core.Reservation

	ds := t.forUpdate(
		t.dialect().From(tableReservations).Select(reservationColumns...).Where(goqu.C("id").Eq(reservationID)),
	)

	found, err := t.selectOne(ctx, "lock reservation", ds, func(rows adapters.DBRows) error {
		var scanErr error
		reservation, scanErr = scanReservation(rows)
		return scanErr
	})
	if err != nil {
		return core.Reservation{}, err
	}

	if !found {
		return core.Reservation{}, ledger.ErrEntityNotFound
	}

	return reservation, nil
}

// ActiveReservationsForTitle returns the stored-active queue of a title, oldest first.
// Entries past their expiry are included; the caller decides what happens to them.
func (t *transaction) ActiveReservationsForTitle(ctx context.Context, titleID core.TitleID) ([]core.Reservation, error) {
	queue := make([]core.Reservation, 0)

	ds := t.forUpdate(
		t.dialect().From(tableReservations).
			Select(reservationColumns...).
			Where(goqu.C("title_id").Eq(titleID), goqu.C("status").Eq(string(core.ReservationStatusActive))).
			Order(goqu.C("reserved_at").Asc(), goqu.C("id").Asc()),
	)

	err := t.query(ctx, "active reservations for title", ds, func(rows adapters.DBRows) error {
		reservation, scanErr := scanReservation(rows)
		if scanErr != nil {
			return scanErr
		}
		queue = append(queue, reservation)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return queue, nil
}

func (t *transaction) ActiveReservationForPair(
	ctx context.Context,
	patronID core.PatronID,
	titleID core.TitleID,
) (core.Reservation, bool, error) {
	var reservation core.Reservation

	ds := t.forUpdate(
		t.dialect().From(tableReservations).
			Select(reservationColumns...).
			Where(
				goqu.C("patron_id").Eq(patronID),
				goqu.C("title_id").Eq(titleID),
				goqu.C("status").Eq(string(core.ReservationStatusActive)),
			),
	)

	found, err := t.selectOne(ctx, "active reservation for patron and title", ds, func(rows adapters.DBRows) error {
		var scanErr error
		reservation, scanErr = scanReservation(rows)
		return scanErr
	})

	return reservation, found, err
}

func (t *transaction) InsertReservation(ctx context.Context, reservation core.Reservation) (core.ReservationID, error) {
	ds := t.dialect().Insert(tableReservations).Rows(goqu.Record{
		"patron_id":   reservation.PatronID,
		"title_id":    reservation.TitleID,
		"reserved_at": core.ToOccurredAt(reservation.ReservedAt),
		"expires_at":  core.ToOccurredAt(reservation.ExpiresAt),
		"status":      string(reservation.Status),
	})

	return t.insertReturningID(ctx, "insert reservation", ds)
}

func (t *transaction) UpdateReservationStatus(
	ctx context.Context,
	reservationID core.ReservationID,
	status core.ReservationStatus,
) error {
	ds := t.dialect().Update(tableReservations).
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.C("id").Eq(reservationID))

	return t.execOne(ctx, "update reservation status", ds)
}

func (t *transaction) UpdateReservationExpiresAt(
	ctx context.Context,
	reservationID core.ReservationID,
	expiresAt time.Time,
) error {
	ds := t.dialect().Update(tableReservations).
		Set(goqu.Record{"expires_at": core.ToOccurredAt(expiresAt)}).
		Where(goqu.C("id").Eq(reservationID))

	return t.execOne(ctx, "update reservation expiry", ds)
}

// AppendAudit writes the entry inside a savepoint so that a failing insert leaves the
// surrounding transaction usable. The error is still returned for the caller to report.
func (t *transaction) AppendAudit(ctx context.Context, entry core.AuditEntry) error {
	if _, err := t.execRaw(ctx, "audit savepoint", "SAVEPOINT "+savepointAudit); err != nil {
		t.engine.recordAuditWriteFailure(ctx, entry.Action)
		return err
	}

	ds := t.dialect().Insert(tableAuditLog).Rows(goqu.Record{
		"actor_type":  string(entry.ActorType),
		"actor_id":    nullable(entry.ActorID),
		"action":      entry.Action,
		"entity_type": string(entry.EntityType),
		"entity_id":   nullable(entry.EntityID),
		"payload":     nullable(entry.Payload),
		"created_at":  core.ToOccurredAt(entry.CreatedAt),
	})

	if _, insertErr := t.exec(ctx, "insert audit entry", ds); insertErr != nil {
		t.engine.recordAuditWriteFailure(ctx, entry.Action)
		t.engine.logWarn(ctx, logMsgAuditWriteFailed, logAttrError, insertErr.Error(), logAttrAuditAction, entry.Action)

		_, rollbackErr := t.execRaw(ctx, "audit rollback to savepoint", "ROLLBACK TO SAVEPOINT "+savepointAudit)
		_, releaseErr := t.execRaw(ctx, "audit release savepoint", "RELEASE SAVEPOINT "+savepointAudit)

		return errors.Join(insertErr, rollbackErr, releaseErr)
	}

	_, err := t.execRaw(ctx, "audit release savepoint", "RELEASE SAVEPOINT "+savepointAudit)

	return err
}
