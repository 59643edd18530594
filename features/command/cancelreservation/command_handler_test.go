package cancelreservation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success_ThenTerminal(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := cancelreservation.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	bob := lib.ApprovedPatron("Bob")
	reservation := lib.Reserve(bob.ID, titleID)

	// act
	_, err := handler.Handle(lib.Ctx, cancelreservation.BuildCommand(reservation.ID, core.PatronActor(bob.ID), lib.Tick()))
	_, again := handler.Handle(lib.Ctx, cancelreservation.BuildCommand(reservation.ID, core.PatronActor(bob.ID), lib.Tick()))

	// assert
	require.NoError(t, err)
	assert.ErrorIs(t, again, core.ErrAlreadyTerminal)

	stored, err := lib.Engine.GetReservation(lib.Ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationStatusCancelled, stored.Status)
}

func Test_CommandHandler_Handle_UnknownReservation(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := cancelreservation.NewCommandHandler(lib.Engine)

	// act
	_, err := handler.Handle(lib.Ctx, cancelreservation.BuildCommand(4711, core.SystemActor(), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
