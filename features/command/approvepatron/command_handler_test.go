package approvepatron_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/approvepatron"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success_ThenIdempotent(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := approvepatron.NewCommandHandler(lib.Engine)

	// arrange
	dave := lib.PendingPatron("Dave")
	approvedAt := lib.Tick()

	// act
	first, err := handler.Handle(lib.Ctx, approvepatron.BuildCommand(dave.ID, core.AdminActor(nil), approvedAt))
	require.NoError(t, err)
	second, err := handler.Handle(lib.Ctx, approvepatron.BuildCommand(dave.ID, core.AdminActor(nil), lib.Tick()))

	// assert
	require.NoError(t, err)
	assert.False(t, first.Idempotent)
	assert.True(t, second.Idempotent)

	stored, err := lib.Engine.GetPatron(lib.Ctx, dave.ID)
	require.NoError(t, err)
	assert.True(t, stored.Patron.Approved)
	require.NotNil(t, stored.Patron.ApprovedAt)
	assert.Equal(t, approvedAt, *stored.Patron.ApprovedAt)
}

func Test_CommandHandler_Handle_UnknownPatron(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := approvepatron.NewCommandHandler(lib.Engine)

	// act
	_, err := handler.Handle(lib.Ctx, approvepatron.BuildCommand(4711, core.AdminActor(nil), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
