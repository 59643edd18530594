package registerpatron_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success_UsesPolicyQuota(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	policy := core.DefaultPolicy()
	policy.DefaultQuota = 3
	handler := registerpatron.NewCommandHandler(lib.Engine, registerpatron.WithPolicy(policy))

	// act
	result, err := handler.Handle(lib.Ctx, registerpatron.BuildCommand("Alice", "alice@example.org", nil, nil, nil, nil, core.SystemActor(), lib.Tick()))

	// assert
	require.NoError(t, err)
	patron, ok := registerpatron.PatronFrom(result)
	require.True(t, ok)

	stored, err := lib.Engine.GetPatron(lib.Ctx, patron.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Patron.Quota)
	assert.False(t, stored.Patron.Approved)
	assert.True(t, stored.Patron.Active)
}

func Test_CommandHandler_Handle_Success_KeepsZeroQuota(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := registerpatron.NewCommandHandler(lib.Engine)
	zero := 0

	// act
	result, err := handler.Handle(lib.Ctx, registerpatron.BuildCommand("Erin", "erin@example.org", nil, nil, nil, &zero, core.SystemActor(), lib.Tick()))

	// assert
	require.NoError(t, err)
	patron, ok := registerpatron.PatronFrom(result)
	require.True(t, ok)

	stored, err := lib.Engine.GetPatron(lib.Ctx, patron.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Patron.Quota)
}

func Test_CommandHandler_Handle_EmailIsUniqueIgnoringCase(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := registerpatron.NewCommandHandler(lib.Engine)

	// arrange
	_, err := handler.Handle(lib.Ctx, registerpatron.BuildCommand("Alice", "alice@example.org", nil, nil, nil, nil, core.SystemActor(), lib.Tick()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(lib.Ctx, registerpatron.BuildCommand("Alice Again", "ALICE@example.org", nil, nil, nil, nil, core.SystemActor(), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)
}

func Test_CommandHandler_Handle_CardNumberIsUnique(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := registerpatron.NewCommandHandler(lib.Engine)

	// arrange
	card := "C-100"
	_, err := handler.Handle(lib.Ctx, registerpatron.BuildCommand("Alice", "alice@example.org", &card, nil, nil, nil, core.SystemActor(), lib.Tick()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(lib.Ctx, registerpatron.BuildCommand("Bob", "bob@example.org", &card, nil, nil, nil, core.SystemActor(), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)
}
