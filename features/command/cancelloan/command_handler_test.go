package cancelloan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/cancelloan"
	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success_FreesCopyAndPromotes(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := cancelloan.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	bob := lib.ApprovedPatron("Bob")
	loan := lib.Borrow(alice.ID, titleID)
	lib.Reserve(bob.ID, titleID)

	// act
	result, err := handler.Handle(lib.Ctx, cancelloan.BuildCommand(loan.ID, 14, core.AdminActor(nil), lib.Tick()))

	// assert
	require.NoError(t, err)
	promoted, ok := cancelloan.PromotedLoanFrom(result)
	require.True(t, ok)
	assert.Equal(t, bob.ID, promoted.PatronID)

	entityType := core.EntityLoan
	entries, err := lib.Engine.ListAuditEntries(lib.Ctx, ledger.AuditFilter{EntityType: &entityType, EntityID: &loan.ID})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "loan_canceled", entries[0].Action)
	assert.Equal(t, core.ActorAdmin, entries[0].ActorType)
}

func Test_CommandHandler_Handle_AlreadyClosed(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := cancelloan.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	loan := lib.Borrow(alice.ID, titleID)
	_, err := handler.Handle(lib.Ctx, cancelloan.BuildCommand(loan.ID, 14, core.AdminActor(nil), lib.Tick()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(lib.Ctx, cancelloan.BuildCommand(loan.ID, 14, core.AdminActor(nil), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyReturned)
}
