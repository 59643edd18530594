package titlesincatalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/query/titlesincatalog"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_QueryHandler_Handle_DerivesAvailableCopies(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := titlesincatalog.NewQueryHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 2)
	alice := lib.ApprovedPatron("Alice")
	lib.Borrow(alice.ID, titleID)

	// act
	result, err := handler.Handle(lib.Ctx, titlesincatalog.BuildTitleQuery(titleID))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.ResultCount())
	assert.Equal(t, 1, result.Titles[0].OpenLoans)
	assert.Equal(t, 1, result.Titles[0].AvailableCopies)
}

func Test_QueryHandler_Handle_SearchIgnoresCaseAndAccents(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := titlesincatalog.NewQueryHandler(lib.Engine)

	// arrange
	lib.AddTitle("Les Misérables", "Victor Hugo", 1)
	lib.AddTitle("Notre-Dame de Paris", "Victor Hugo", 1)
	lib.AddTitle("L'Étranger", "Albert Camus", 1)

	// act
	byTitle, err := handler.Handle(lib.Ctx, titlesincatalog.BuildQuery("MISERABLES", 0, 0))
	require.NoError(t, err)
	byAuthor, err := handler.Handle(lib.Ctx, titlesincatalog.BuildQuery("hugo", 0, 0))
	require.NoError(t, err)

	// assert
	require.Equal(t, 1, byTitle.Count)
	assert.Equal(t, "Les Misérables", byTitle.Titles[0].Title.Title)
	assert.Equal(t, 2, byAuthor.Count)
}

func Test_QueryHandler_Handle_LatestTitlesAreNewestFirstAndCapped(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := titlesincatalog.NewQueryHandler(lib.Engine)

	// arrange
	var last core.TitleID
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		last = lib.AddTitle(name, "Author "+name, 1)
	}

	// act
	result, err := handler.Handle(lib.Ctx, titlesincatalog.BuildLatestQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, titlesincatalog.LatestTitlesLimit, result.Count)
	assert.Equal(t, last, result.Titles[0].ID)
}

func Test_QueryHandler_Handle_UnknownTitle(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := titlesincatalog.NewQueryHandler(lib.Engine)

	// act
	_, err := handler.Handle(lib.Ctx, titlesincatalog.BuildTitleQuery(4711))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
