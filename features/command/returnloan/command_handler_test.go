package returnloan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success_WithoutQueue(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := returnloan.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	loan := lib.Borrow(alice.ID, titleID)

	// act
	result, err := handler.Handle(lib.Ctx, returnloan.BuildCommand(loan.ID, 14, core.PatronActor(alice.ID), lib.Tick()))

	// assert
	require.NoError(t, err)
	outcome := returnloan.OutcomeFrom(result)
	assert.Equal(t, loan.ID, outcome.Loan.ID)
	assert.Nil(t, outcome.PromotedLoan)

	stored, err := lib.Engine.GetLoan(lib.Ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, core.LoanStatusReturned, stored.Status)
	require.NotNil(t, stored.ReturnedAt)

	title, err := lib.Engine.GetTitle(lib.Ctx, titleID)
	require.NoError(t, err)
	assert.Equal(t, 1, core.AvailableCopies(title.Title.TotalCopies, title.OpenLoans))
}

func Test_CommandHandler_Handle_PromotesQueueHead_EvenBeyondQuota(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := returnloan.NewCommandHandler(lib.Engine)

	// arrange
	orwell := lib.AddTitle("1984", "George Orwell", 1)
	dune := lib.AddTitle("Dune", "Frank Herbert", 1)
	alice := lib.ApprovedPatron("Alice")
	bob := lib.ApprovedPatronWithQuota("Bob", 1)
	carol := lib.ApprovedPatron("Carol")

	aliceLoan := lib.Borrow(alice.ID, orwell)
	lib.Borrow(bob.ID, dune) // Bob is at his quota
	bobReservation := lib.Reserve(bob.ID, orwell)
	lib.Reserve(carol.ID, orwell)

	// act
	result, err := handler.Handle(lib.Ctx, returnloan.BuildCommand(aliceLoan.ID, 14, core.PatronActor(alice.ID), lib.Tick()))

	// assert
	require.NoError(t, err)
	outcome := returnloan.OutcomeFrom(result)
	require.NotNil(t, outcome.PromotedReservation)
	require.NotNil(t, outcome.PromotedLoan)
	assert.Equal(t, bobReservation.ID, outcome.PromotedReservation.ID)
	assert.Equal(t, bob.ID, outcome.PromotedLoan.PatronID)
	assert.Equal(t, bobReservation.ID, *outcome.PromotedLoan.ReservationID)

	reservation, err := lib.Engine.GetReservation(lib.Ctx, bobReservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationStatusFulfilled, reservation.Status)

	promoted, err := lib.Engine.GetLoan(lib.Ctx, outcome.PromotedLoan.ID)
	require.NoError(t, err)
	assert.Equal(t, core.LoanStatusOpen, promoted.Status)

	title, err := lib.Engine.GetTitle(lib.Ctx, orwell)
	require.NoError(t, err)
	assert.Equal(t, 0, core.AvailableCopies(title.Title.TotalCopies, title.OpenLoans))
}

func Test_CommandHandler_Handle_SkipsDeactivatedReserver(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := returnloan.NewCommandHandler(lib.Engine)

	// arrange
	orwell := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	bob := lib.ApprovedPatron("Bob")

	aliceLoan := lib.Borrow(alice.ID, orwell)
	bobReservation := lib.Reserve(bob.ID, orwell)
	lib.Deactivate(bob.ID)

	// act
	result, err := handler.Handle(lib.Ctx, returnloan.BuildCommand(aliceLoan.ID, 14, core.PatronActor(alice.ID), lib.Tick()))

	// assert
	require.NoError(t, err)
	outcome := returnloan.OutcomeFrom(result)
	assert.Nil(t, outcome.PromotedReservation)
	assert.Nil(t, outcome.PromotedLoan)

	reservation, err := lib.Engine.GetReservation(lib.Ctx, bobReservation.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationStatusActive, reservation.Status)

	title, err := lib.Engine.GetTitle(lib.Ctx, orwell)
	require.NoError(t, err)
	assert.Equal(t, 0, title.OpenLoans)
}

func Test_CommandHandler_Handle_ExpiresStaleReservationsBeforePromoting(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := returnloan.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	bob := lib.ApprovedPatron("Bob")
	carol := lib.ApprovedPatron("Carol")

	loan := lib.Borrow(alice.ID, titleID)
	stale := lib.Reserve(bob.ID, titleID)
	lib.Advance(core.Days(5))
	live := lib.Reserve(carol.ID, titleID)
	lib.Advance(core.Days(3)) // Bob's reservation ran out, Carol's is still good

	// act
	result, err := handler.Handle(lib.Ctx, returnloan.BuildCommand(loan.ID, 14, core.PatronActor(alice.ID), lib.Tick()))

	// assert
	require.NoError(t, err)
	outcome := returnloan.OutcomeFrom(result)
	require.Len(t, outcome.ExpiredReservations, 1)
	assert.Equal(t, stale.ID, outcome.ExpiredReservations[0].ID)
	require.NotNil(t, outcome.PromotedReservation)
	assert.Equal(t, live.ID, outcome.PromotedReservation.ID)

	expired, err := lib.Engine.GetReservation(lib.Ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ReservationStatusExpired, expired.Status)
}

func Test_CommandHandler_Handle_ReturningTwiceFails(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := returnloan.NewCommandHandler(lib.Engine)

	// arrange
	titleID := lib.AddTitle("1984", "George Orwell", 1)
	alice := lib.ApprovedPatron("Alice")
	loan := lib.Borrow(alice.ID, titleID)
	_, err := handler.Handle(lib.Ctx, returnloan.BuildCommand(loan.ID, 14, core.PatronActor(alice.ID), lib.Tick()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(lib.Ctx, returnloan.BuildCommand(loan.ID, 14, core.PatronActor(alice.ID), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyReturned)
}

func Test_CommandHandler_Handle_UnknownLoan(t *testing.T) {
	// setup
	lib := fixtures.NewLibrary(t)
	handler := returnloan.NewCommandHandler(lib.Engine)

	// act
	_, err := handler.Handle(lib.Ctx, returnloan.BuildCommand(4711, 14, core.SystemActor(), lib.Tick()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
