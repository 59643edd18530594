package borrowtitle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowtitle"
	"github.com/AntonStoeckl/library-circulation-go/ledger"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := borrowtitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 2)
	alice := lib.ApprovedPatron("Alice")

	// act
	result, err := handler.Handle(lib.Ctx, borrowtitle.BuildCommand(alice.ID, titleID, 14, core.PatronActor(alice.ID), lib.Tick()))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, result.Retry.Attempts)

	loan, ok := borrowtitle.LoanFrom(result)
	require.True(t, ok)
	assert.NotZero(t, loan.ID)

	stored, err := lib.Engine.GetLoan(lib.Ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, core.LoanStatusOpen, stored.Status)
	assert.Equal(t, loan.DueAt, stored.DueAt)

	title, err := lib.Engine.GetTitle(lib.Ctx, titleID)
	require.NoError(t, err)
	assert.Equal(t, 1, core.AvailableCopies(title.Title.TotalCopies, title.OpenLoans))

	entityType := core.EntityLoan
	entries, err := lib.Engine.ListAuditEntries(lib.Ctx, ledger.AuditFilter{EntityType: &entityType, EntityID: &loan.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "loan_opened", entries[0].Action)
	assert.Equal(t, core.ActorPatron, entries[0].ActorType)
}

func Test_CommandHandler_Handle_LastCopy_SecondPatronGetsNoCopiesAvailable(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := borrowtitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	bob := lib.ApprovedPatron("Bob")
	lib.Borrow(alice.ID, titleID)

	// act
	_, err := handler.Handle(lib.Ctx, borrowtitle.BuildCommand(bob.ID, titleID, 14, core.PatronActor(bob.ID), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrNoCopiesAvailable)

	loans, err := lib.Engine.ListLoans(lib.Ctx, ledger.LoanFilter{TitleID: &titleID})
	require.NoError(t, err)
	assert.Len(t, loans, 1, "the rejected borrow must not leave a loan behind")
}

func Test_CommandHandler_Handle_QuotaIsEnforced(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := borrowtitle.NewCommandHandler(lib.Engine)

	// arrange
	first := lib.AddTitle("Dune", "Frank Herbert", 1)
	second := lib.AddTitle("Emma", "Jane Austen", 1)
	carol := lib.ApprovedPatronWithQuota("Carol", 1)
	lib.Borrow(carol.ID, first)

	// act
	_, err := handler.Handle(lib.Ctx, borrowtitle.BuildCommand(carol.ID, second, 14, core.PatronActor(carol.ID), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrLoanLimitExceeded)
}

func Test_CommandHandler_Handle_ZeroQuotaAllowsNoLoans(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := borrowtitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("Dune", "Frank Herbert", 1)
	erin := lib.ApprovedPatronWithQuota("Erin", 0)

	// act
	_, err := handler.Handle(lib.Ctx, borrowtitle.BuildCommand(erin.ID, titleID, 14, core.PatronActor(erin.ID), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrLoanLimitExceeded)
}

func Test_CommandHandler_Handle_PendingPatronIsNotEligible(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := borrowtitle.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	dave := lib.PendingPatron("Dave")

	// act
	_, err := handler.Handle(lib.Ctx, borrowtitle.BuildCommand(dave.ID, titleID, 14, core.PatronActor(dave.ID), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrPatronNotEligible)
	assert.True(t, core.IsDomainError(err))
}

func Test_CommandHandler_Handle_UnknownTitle(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := borrowtitle.NewCommandHandler(lib.Engine)

	// arrange
	alice := lib.ApprovedPatron("Alice")

	// act
	_, err := handler.Handle(lib.Ctx, borrowtitle.BuildCommand(alice.ID, 4711, 14, core.PatronActor(alice.ID), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
