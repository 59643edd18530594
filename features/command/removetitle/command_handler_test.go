package removetitle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/removetitle"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_RemovesTitleWithClosedHistory(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := removetitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	loan := lib.Borrow(alice.ID, titleID)
	_, err := returnloan.NewCommandHandler(lib.Engine).Handle(lib.Ctx, returnloan.BuildCommand(loan.ID, 14, core.PatronActor(alice.ID), lib.Tick()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(lib.Ctx, removetitle.BuildCommand(titleID, core.AdminActor(nil), lib.Tick()))

	// assert
	require.NoError(t, err)

	_, err = lib.Engine.GetTitle(lib.Ctx, titleID)
	assert.ErrorIs(t, err, ledger.ErrEntityNotFound)

	_, err = lib.Engine.GetLoan(lib.Ctx, loan.ID)
	assert.ErrorIs(t, err, ledger.ErrEntityNotFound)
}

func Test_CommandHandler_Handle_OpenLoanBlocksRemoval(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := removetitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	lib.Borrow(alice.ID, titleID)

	// act
	_, err := handler.Handle(lib.Ctx, removetitle.BuildCommand(titleID, core.AdminActor(nil), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)

	_, err = lib.Engine.GetTitle(lib.Ctx, titleID)
	assert.NoError(t, err)
}

func Test_CommandHandler_Handle_LiveReservationBlocksRemoval(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := removetitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	bob := lib.ApprovedPatron("Bob")
	lib.Reserve(bob.ID, titleID)

	// act
	_, err := handler.Handle(lib.Ctx, removetitle.BuildCommand(titleID, core.AdminActor(nil), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)
}
