package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/sqlitetest"
)

func Test_AuditAction(t *testing.T) {
	assert.Equal(t, "loan_canceled", shell.AuditAction(core.LoanCanceledEventType))
	assert.Equal(t, "title_added_to_catalog", shell.AuditAction(core.TitleAddedToCatalogEventType))
	assert.Equal(t, "reservation_expired", shell.AuditAction(core.ReservationExpiredEventType))
}

func Test_AuditEntryFrom_CarriesActorAndMetadata(t *testing.T) {
	// arrange
	now := core.ToOccurredAt(time.Now())
	adminID := int64(7)
	correlationID := uuid.New()
	ctx := shell.WithCorrelationID(context.Background(), correlationID)
	causation := shell.NewCausation(ctx, core.AdminActor(&adminID))
	event := core.BuildLoanExtended(core.Loan{ID: 42, DueAt: now}, 3, now)

	// act
	entry := shell.AuditEntryFrom(event, causation)

	// assert
	assert.Equal(t, core.ActorAdmin, entry.ActorType)
	assert.Equal(t, &adminID, entry.ActorID)
	assert.Equal(t, "loan_extended", entry.Action)
	assert.Equal(t, core.EntityLoan, entry.EntityType)
	require.NotNil(t, entry.EntityID)
	assert.Equal(t, int64(42), *entry.EntityID)
	assert.Equal(t, now, entry.CreatedAt)

	require.NotNil(t, entry.Payload)
	metadata, err := shell.EventMetadataFrom(*entry.Payload)
	require.NoError(t, err)
	assert.Equal(t, correlationID.String(), metadata.CorrelationID)
	assert.Equal(t, causation.MessageID.String(), metadata.CausationID)
	assert.NotEqual(t, metadata.CausationID, metadata.MessageID)
}

func Test_NewCausation_StartsOwnCorrelation_WithoutRequestContext(t *testing.T) {
	causation := shell.NewCausation(context.Background(), core.SystemActor())

	assert.Equal(t, causation.MessageID, causation.CorrelationID)
}

func Test_ApplyEvents_WritesRowsAndOneAuditEntryPerEvent(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := sqlitetest.NewEngine(t)
	now := core.ToOccurredAt(time.Now())
	causation := shell.NewCausation(ctx, core.SystemActor())

	var applied core.DomainEvents

	// act
	err := engine.WithinTransaction(ctx, func(ctx context.Context, tx ledger.Tx) error {
		var err error

		applied, err = shell.ApplyEvents(ctx, tx, causation,
			core.BuildTitleAddedToCatalog(core.Title{Title: "1984", Author: "George Orwell", TotalCopies: 2}, now),
			core.BuildPatronRegistered(core.Patron{Name: "Ada", Email: "ada@example.org", Quota: 5}, now),
		)

		return err
	})

	// assert
	require.NoError(t, err)
	require.Len(t, applied, 2)

	titleAdded, ok := applied[0].(core.TitleAddedToCatalog)
	require.True(t, ok)
	assert.NotZero(t, titleAdded.Title.ID)

	record, err := engine.GetTitle(ctx, titleAdded.Title.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, record.Title.TotalCopies)

	entries, err := engine.ListAuditEntries(ctx, ledger.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "patron_registered", entries[0].Action)
	assert.Equal(t, "title_added_to_catalog", entries[1].Action)
	require.NotNil(t, entries[1].EntityID)
	assert.Equal(t, titleAdded.Title.ID, *entries[1].EntityID)
}

func Test_ApplyEvents_KeepsTheMutation_WhenTheAuditWriteFails(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := sqlitetest.NewEngine(t)
	now := core.ToOccurredAt(time.Now())
	causation := shell.NewCausation(ctx, core.Actor{Role: "robot"})

	var applied core.DomainEvents

	// act
	err := engine.WithinTransaction(ctx, func(ctx context.Context, tx ledger.Tx) error {
		var err error
		applied, err = shell.ApplyEvents(ctx, tx, causation,
			core.BuildTitleAddedToCatalog(core.Title{Title: "Dune", Author: "Frank Herbert", TotalCopies: 1}, now),
		)

		return err
	})

	// assert
	require.NoError(t, err)

	titleAdded := applied[0].(core.TitleAddedToCatalog)
	_, err = engine.GetTitle(ctx, titleAdded.Title.ID)
	assert.NoError(t, err)

	entries, err := engine.ListAuditEntries(ctx, ledger.AuditFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
