package increasecopies_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/increasecopies"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := increasecopies.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)

	// act
	result, err := handler.Handle(lib.Ctx, increasecopies.BuildCommand(titleID, 4, core.AdminActor(nil), lib.Tick()))

	// assert
	require.NoError(t, err)
	total, ok := increasecopies.TotalCopiesFrom(result)
	require.True(t, ok)
	assert.Equal(t, 5, total)

	title, err := lib.Engine.GetTitle(lib.Ctx, titleID)
	require.NoError(t, err)
	assert.Equal(t, 5, title.Title.TotalCopies)
}

func Test_CommandHandler_Handle_UnknownTitle(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := increasecopies.NewCommandHandler(lib.Engine)

	// act
	_, err := handler.Handle(lib.Ctx, increasecopies.BuildCommand(4711, 1, core.AdminActor(nil), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
