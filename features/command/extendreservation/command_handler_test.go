package extendreservation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/extendreservation"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_StaleReservationComesBackToLife(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := extendreservation.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	bob := lib.ApprovedPatron("Bob")
	reservation := lib.Reserve(bob.ID, titleID)
	lib.Advance(core.Days(10))

	// act
	now := lib.Tick()
	result, err := handler.Handle(lib.Ctx, extendreservation.BuildCommand(reservation.ID, 7, core.PatronActor(bob.ID), now))

	// assert
	require.NoError(t, err)
	expiresAt, ok := extendreservation.NewExpiresAtFrom(result)
	require.True(t, ok)
	assert.Equal(t, core.ToOccurredAt(now).Add(core.Days(7)), expiresAt)

	stored, err := lib.Engine.GetReservation(lib.Ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationStatusActive, stored.EffectiveStatus(now))
	assert.True(t, stored.ExpiresAt.After(now))
}

func Test_CommandHandler_Handle_UnknownReservation(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := extendreservation.NewCommandHandler(lib.Engine)

	// act
	_, err := handler.Handle(lib.Ctx, extendreservation.BuildCommand(4711, 7, core.SystemActor(), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
