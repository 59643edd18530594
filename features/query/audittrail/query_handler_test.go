package audittrail_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/query/audittrail"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_QueryHandler_Handle_HistoryOfOneLoan(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := audittrail.NewQueryHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	loan := lib.Borrow(alice.ID, titleID)

	// act
	result, err := handler.Handle(lib.Ctx, audittrail.BuildEntityQuery(core.EntityLoan, int64(loan.ID), 0))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.ResultCount())

	entry := result.Entries[0]
	assert.Equal(t, "loan_opened", entry.Action)
	assert.Equal(t, core.EntityLoan, entry.EntityType)
	require.NotNil(t, entry.EntityID)
	assert.Equal(t, int64(loan.ID), *entry.EntityID)
	require.NotNil(t, entry.Metadata)
	assert.NotEmpty(t, entry.Metadata.MessageID)
	assert.NotEmpty(t, entry.Metadata.CausationID)
	assert.NotEmpty(t, entry.Metadata.CorrelationID)

	var event map[string]any
	require.NoError(t, jsoniter.Unmarshal(entry.Event, &event))
	assert.Contains(t, event, "loan")
	assert.Contains(t, event, "occurred_at")
}

func Test_QueryHandler_Handle_NewestFirstWithPaging(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := audittrail.NewQueryHandler(lib.Engine)

	// arrange
	lib.AddTitle("1984", "George Orwell", 1)
	lib.PendingPatron("Alice")

	// act
	firstPage, err := handler.Handle(lib.Ctx, audittrail.BuildQuery(1, 0))
	require.NoError(t, err)
	secondPage, err := handler.Handle(lib.Ctx, audittrail.BuildQuery(1, 1))
	require.NoError(t, err)

	// assert
	require.Equal(t, 1, firstPage.Count)
	require.Equal(t, 1, secondPage.Count)
	assert.Equal(t, "patron_registered", firstPage.Entries[0].Action)
	assert.Equal(t, "title_added_to_catalog", secondPage.Entries[0].Action)
	assert.Greater(t, firstPage.Entries[0].ID, secondPage.Entries[0].ID)
}
