package changepatronstatus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowtitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/changepatronstatus"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_DeactivatedPatronKeepsLoansButCannotBorrow(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := changepatronstatus.NewCommandHandler(lib.Engine)

	// arrange
	first := lib.AddTitle("1984", "George Orwell", 1)
	second := lib.AddTitle("Dune", "Frank Herbert", 1)
	alice := lib.ApprovedPatron("Alice")
	loan := lib.Borrow(alice.ID, first)

	// act
	_, err := handler.Handle(lib.Ctx, changepatronstatus.BuildCommand(alice.ID, false, core.AdminActor(nil), lib.Tick()))

	// assert
	require.NoError(t, err)

	_, err = borrowtitle.NewCommandHandler(lib.Engine).
		Handle(lib.Ctx, borrowtitle.BuildCommand(alice.ID, second, 14, core.PatronActor(alice.ID), lib.Tick()))
	assert.ErrorIs(t, err, core.ErrPatronNotEligible)

	_, err = returnloan.NewCommandHandler(lib.Engine).
		Handle(lib.Ctx, returnloan.BuildCommand(loan.ID, 14, core.PatronActor(alice.ID), lib.Tick()))
	assert.NoError(t, err, "an inactive patron can still return")
}

func Test_CommandHandler_Handle_Idempotent_WhenStatusUnchanged(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := changepatronstatus.NewCommandHandler(lib.Engine)

	// arrange
	alice := lib.ApprovedPatron("Alice")

	// act
	result, err := handler.Handle(lib.Ctx, changepatronstatus.BuildCommand(alice.ID, true, core.AdminActor(nil), lib.Tick()))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
}

func Test_CommandHandler_Handle_Reactivate(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := changepatronstatus.NewCommandHandler(lib.Engine)

	// arrange
	alice := lib.ApprovedPatron("Alice")
	_, err := handler.Handle(lib.Ctx, changepatronstatus.BuildCommand(alice.ID, false, core.AdminActor(nil), lib.Tick()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(lib.Ctx, changepatronstatus.BuildCommand(alice.ID, true, core.AdminActor(nil), lib.Tick()))

	// assert
	require.NoError(t, err)
	stored, err := lib.Engine.GetPatron(lib.Ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, stored.Patron.Active)
}
