package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

// ErrApplyingEventFailed is returned when a decided event could not be written to the ledger.
var ErrApplyingEventFailed = errors.New("applying domain event failed")

// ErrUnknownDomainEvent is returned for an event type the shell has no mutation for.
var ErrUnknownDomainEvent = errors.New("unknown domain event")

// AuditPayload is what gets stored as the payload of an audit entry.
type AuditPayload struct {
	Event    core.DomainEvent `json:"event"`
	Metadata EventMetadata    `json:"metadata"`
}

// Causation identifies the command whose events are applied, for audit metadata.
type Causation struct {
	Actor         core.Actor
	MessageID     uuid.UUID
	CorrelationID uuid.UUID
}

// NewCausation builds the Causation for one handled command.
func NewCausation(ctx context.Context, actor core.Actor) Causation {
	messageID, correlationID := NewCommandMessageID(ctx)

	return Causation{
		Actor:         actor,
		MessageID:     messageID,
		CorrelationID: correlationID,
	}
}

// ApplyEvents writes the decided events to the ledger, in order, inside tx.
//
// Every event is followed by its audit entry. A failed audit write does not fail the command;
// the store has already rolled the entry back to its savepoint and logged it.
// The returned events carry the ids assigned to inserted rows.
func ApplyEvents(ctx context.Context, tx ledger.Tx, causation Causation, events ...core.DomainEvent) (core.DomainEvents, error) {
	applied := make(core.DomainEvents, 0, len(events))

	for _, event := range events {
		stored, err := applyEvent(ctx, tx, event)
		if err != nil {
			return nil, errors.Join(ErrApplyingEventFailed, err)
		}

		_ = tx.AppendAudit(ctx, AuditEntryFrom(stored, causation))

		applied = append(applied, stored)
	}

	return applied, nil
}

func applyEvent(ctx context.Context, tx ledger.Tx, event core.DomainEvent) (core.DomainEvent, error) { //nolint:gocyclo // one case per event type
	switch e := event.(type) {
	case core.TitleAddedToCatalog:
		id, err := tx.InsertTitle(ctx, e.Title)
		e.Title.ID = id
		return e, err

	case core.TitleCopiesIncreased:
		return e, tx.UpdateTitleCopies(ctx, e.TitleID, e.TotalCopies)

	case core.TitleRemovedFromCatalog:
		return e, tx.DeleteTitle(ctx, e.TitleID)

	case core.PatronRegistered:
		id, err := tx.InsertPatron(ctx, e.Patron)
		e.Patron.ID = id
		return e, err

	case core.PatronApproved:
		return e, tx.UpdatePatronApproval(ctx, e.PatronID, e.OccurredAt)

	case core.PatronDeactivated:
		return e, tx.UpdatePatronActive(ctx, e.PatronID, false)

	case core.PatronReactivated:
		return e, tx.UpdatePatronActive(ctx, e.PatronID, true)

	case core.LoanOpened:
		id, err := tx.InsertLoan(ctx, e.Loan)
		e.Loan.ID = id
		return e, err

	case core.LoanReturned:
		return e, tx.CloseLoan(ctx, e.Loan.ID, *e.Loan.ReturnedAt)

	case core.LoanCanceled:
		return e, tx.CloseLoan(ctx, e.Loan.ID, *e.Loan.ReturnedAt)

	case core.LoanExtended:
		return e, tx.UpdateLoanDueAt(ctx, e.LoanID, e.DueAt)

	case core.ReservationPlaced:
		id, err := tx.InsertReservation(ctx, e.Reservation)
		e.Reservation.ID = id
		return e, err

	case core.ReservationFulfilled:
		return e, tx.UpdateReservationStatus(ctx, e.Reservation.ID, core.ReservationStatusFulfilled)

	case core.ReservationCanceled:
		return e, tx.UpdateReservationStatus(ctx, e.Reservation.ID, core.ReservationStatusCancelled)

	case core.ReservationExpired:
		return e, tx.UpdateReservationStatus(ctx, e.Reservation.ID, core.ReservationStatusExpired)

	case core.ReservationExtended:
		return e, tx.UpdateReservationExpiresAt(ctx, e.ReservationID, e.ExpiresAt)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDomainEvent, event.EventType())
	}
}

// AuditEntryFrom builds the audit entry for an applied event.
// The payload is left empty when the event cannot be encoded; the entry itself is still written.
func AuditEntryFrom(event core.DomainEvent, causation Causation) core.AuditEntry {
	entry := core.AuditEntry{
		ActorType:  causation.Actor.Role,
		ActorID:    causation.Actor.ID,
		Action:     AuditAction(event.EventType()),
		EntityType: event.EntityType(),
		CreatedAt:  event.HasOccurredAt(),
	}

	if entry.ActorType == "" {
		entry.ActorType = core.ActorSystem
	}

	if id := event.EntityID(); id != 0 {
		entry.EntityID = &id
	}

	payload := AuditPayload{
		Event:    event,
		Metadata: BuildEventMetadata(uuid.New(), causation.MessageID, causation.CorrelationID),
	}

	if encoded, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(payload); err == nil {
		entry.Payload = &encoded
	}

	return entry
}

// AuditAction converts an event type like "LoanCanceled" into the audit action "loan_canceled".
func AuditAction(eventType string) string {
	var b strings.Builder

	for i, r := range eventType {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return b.String()
}
