package reservetitle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/reservetitle"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := reservetitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	bob := lib.ApprovedPatron("Bob")

	// act
	result, err := handler.Handle(lib.Ctx, reservetitle.BuildCommand(bob.ID, titleID, 7, core.PatronActor(bob.ID), lib.Tick()))

	// assert
	require.NoError(t, err)
	reservation, ok := reservetitle.ReservationFrom(result)
	require.True(t, ok)

	stored, err := lib.Engine.GetReservation(lib.Ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationStatusActive, stored.Status)
	assert.Equal(t, reservation.ExpiresAt, stored.ExpiresAt)
}

func Test_CommandHandler_Handle_DuplicateWhileLive(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := reservetitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	bob := lib.ApprovedPatron("Bob")
	lib.Reserve(bob.ID, titleID)

	// act
	_, err := handler.Handle(lib.Ctx, reservetitle.BuildCommand(bob.ID, titleID, 7, core.PatronActor(bob.ID), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrDuplicateReservation)
}

func Test_CommandHandler_Handle_StaleReservationIsReplaced(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := reservetitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	bob := lib.ApprovedPatron("Bob")
	old := lib.Reserve(bob.ID, titleID)
	lib.Advance(core.Days(8))

	// act
	result, err := handler.Handle(lib.Ctx, reservetitle.BuildCommand(bob.ID, titleID, 7, core.PatronActor(bob.ID), lib.Tick()))

	// assert
	require.NoError(t, err)
	fresh, ok := reservetitle.ReservationFrom(result)
	require.True(t, ok)
	assert.NotEqual(t, old.ID, fresh.ID)

	expired, err := lib.Engine.GetReservation(lib.Ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationStatusExpired, expired.Status)
}

func Test_CommandHandler_Handle_InactivePatronIsNotEligible(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := reservetitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	dave := lib.PendingPatron("Dave")

	// act
	_, err := handler.Handle(lib.Ctx, reservetitle.BuildCommand(dave.ID, titleID, 7, core.PatronActor(dave.ID), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrPatronNotEligible)
}
