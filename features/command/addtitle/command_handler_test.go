package addtitle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/addtitle"
	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_SameTitleAndAuthorMergesCopies(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := addtitle.NewCommandHandler(lib.Engine)

	// arrange
	first := lib.AddTitle("1984", "George Orwell", 1)

	// act
	result, err := handler.Handle(lib.Ctx, addtitle.BuildCommand(core.Title{Title: "1984", Author: "George Orwell"}, 2, core.AdminActor(nil), lib.Tick()))

	// assert
	require.NoError(t, err)
	titleID, ok := addtitle.TitleIDFrom(result)
	require.True(t, ok)
	assert.Equal(t, first, titleID)

	titles, err := lib.Engine.ListTitles(lib.Ctx, ledger.TitleFilter{})
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, 3, titles[0].Title.TotalCopies)
}

func Test_CommandHandler_Handle_ISBNConflict(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := addtitle.NewCommandHandler(lib.Engine)

	// arrange
	isbn := "978-0451524935"
	_, err := handler.Handle(lib.Ctx, addtitle.BuildCommand(core.Title{Title: "1984", Author: "George Orwell", ISBN: &isbn}, 1, core.AdminActor(nil), lib.Tick()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(lib.Ctx, addtitle.BuildCommand(core.Title{Title: "Animal Farm", Author: "George Orwell", ISBN: &isbn}, 1, core.AdminActor(nil), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)
}

func Test_CommandHandler_Handle_InvalidInputLeavesNoTrace(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := addtitle.NewCommandHandler(lib.Engine)

	// act
	_, err := handler.Handle(lib.Ctx, addtitle.BuildCommand(core.Title{Title: "1984", Author: "George Orwell"}, 0, core.AdminActor(nil), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	entries, err := lib.Engine.ListAuditEntries(lib.Ctx, ledger.AuditFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
