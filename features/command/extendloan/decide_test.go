package extendloan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/features/command/extendloan"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

var now = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func Test_Decide_Success_AddsDaysToDueDate(t *testing.T) {
	// arrange
	dueAt := now.Add(-2 * 24 * time.Hour) // overdue loans can be extended too
	command := extendloan.BuildCommand(11, 7, core.AdminActor(nil), now)
	s := extendloan.State{Loan: core.Loan{ID: 11, DueAt: dueAt, Status: core.LoanStatusOpen}, Found: true}

	// act
	result := extendloan.Decide(command, s)

	// assert
	assert.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)

	extended, ok := result.Events[0].(core.LoanExtended)
	assert.True(t, ok, "should be a LoanExtended event")
	assert.Equal(t, dueAt, extended.PreviousDueAt)
	assert.Equal(t, dueAt.Add(7*24*time.Hour), extended.DueAt)
}

func Test_Decide_Errors(t *testing.T) {
	closed := core.Loan{ID: 11, Status: core.LoanStatusOpen}.Returned(now)

	tests := []struct {
		name     string
		days     int
		state    extendloan.State
		expected error
	}{
		{"zero days", 0, extendloan.State{Loan: core.Loan{ID: 11, Status: core.LoanStatusOpen}, Found: true}, core.ErrInvalidInput},
		{"unknown loan", 7, extendloan.State{}, core.ErrNotFound},
		{"returned loan", 7, extendloan.State{Loan: closed, Found: true}, core.ErrAlreadyReturned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			command := extendloan.BuildCommand(11, tt.days, core.AdminActor(nil), now)

			// act
			result := extendloan.Decide(command, tt.state)

			// assert
			assert.ErrorIs(t, result.HasError(), tt.expected)
		})
	}
}
