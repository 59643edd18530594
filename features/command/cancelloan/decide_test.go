package cancelloan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/features/command/cancelloan"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

var now = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func Test_Decide_Success_CancelsLoanAndPromotes(t *testing.T) {
	// arrange
	command := cancelloan.BuildCommand(11, 14, core.AdminActor(nil), now)
	s := cancelloan.State{
		Loan:      core.Loan{ID: 11, PatronID: 1, TitleID: 3, DueAt: now.Add(time.Hour), Status: core.LoanStatusOpen},
		LoanFound: true,
		Title:     core.Title{ID: 3, TotalCopies: 1},
		OpenLoans: 1,
		Queue: []core.Reservation{
			{ID: 21, PatronID: 2, TitleID: 3, ReservedAt: now.Add(-time.Hour), ExpiresAt: now.Add(time.Hour), Status: core.ReservationStatusActive},
		},
		Patrons: map[core.PatronID]core.Patron{2: {ID: 2, Approved: true, Active: true, Quota: 5}},
	}

	// act
	result := cancelloan.Decide(command, s)

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 3)

	canceled, ok := result.Events[0].(core.LoanCanceled)
	assert.True(t, ok, "first event should cancel the loan")
	assert.Equal(t, core.LoanStatusReturned, canceled.Loan.Status)
	assert.Equal(t, now, *canceled.Loan.ReturnedAt)
	assert.IsType(t, core.ReservationFulfilled{}, result.Events[1])
	assert.IsType(t, core.LoanOpened{}, result.Events[2])
}

func Test_Decide_Errors(t *testing.T) {
	closed := core.Loan{ID: 11, Status: core.LoanStatusOpen}.Returned(now.Add(-time.Hour))

	tests := []struct {
		name     string
		loanDays int
		state    cancelloan.State
		expected error
	}{
		{"non-positive loan days", -1, cancelloan.State{}, core.ErrInvalidInput},
		{"unknown loan", 14, cancelloan.State{}, core.ErrNotFound},
		{"already closed", 14, cancelloan.State{Loan: closed, LoanFound: true}, core.ErrAlreadyReturned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			command := cancelloan.BuildCommand(11, tt.loanDays, core.AdminActor(nil), now)

			// act
			result := cancelloan.Decide(command, tt.state)

			// assert
			assert.ErrorIs(t, result.HasError(), tt.expected)
		})
	}
}
