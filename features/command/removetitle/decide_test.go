package removetitle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/features/command/removetitle"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

var now = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func Test_Decide_Success_WhenNothingIsLentOrReserved(t *testing.T) {
	// arrange
	command := removetitle.BuildCommand(4, core.AdminActor(nil), now)
	s := givenState()

	// act
	result := removetitle.Decide(command, s)

	// assert
	assert.NoError(t, result.HasError())
	removed, ok := result.Events[0].(core.TitleRemovedFromCatalog)
	assert.True(t, ok, "should be a TitleRemovedFromCatalog event")
	assert.Equal(t, "1984", removed.Title)
}

func Test_Decide_Success_StaleReservationsDoNotBlock(t *testing.T) {
	// arrange
	command := removetitle.BuildCommand(4, core.AdminActor(nil), now)
	s := givenState()
	s.Queue = []core.Reservation{{ID: 1, ExpiresAt: now.Add(-time.Hour), Status: core.ReservationStatusActive}}

	// act
	result := removetitle.Decide(command, s)

	// assert
	assert.NoError(t, result.HasError())
}

func Test_Decide_Errors(t *testing.T) {
	lent := givenState()
	lent.OpenLoans = 1

	reserved := givenState()
	reserved.Queue = []core.Reservation{{ID: 1, ExpiresAt: now.Add(time.Hour), Status: core.ReservationStatusActive}}

	tests := []struct {
		name     string
		state    removetitle.State
		expected error
	}{
		{"unknown title", removetitle.State{}, core.ErrNotFound},
		{"open loan", lent, core.ErrConflict},
		{"live reservation", reserved, core.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			command := removetitle.BuildCommand(4, core.AdminActor(nil), now)

			// act
			result := removetitle.Decide(command, tt.state)

			// assert
			assert.ErrorIs(t, result.HasError(), tt.expected)
		})
	}
}

func givenState() removetitle.State {
	return removetitle.State{
		Title: core.Title{ID: 4, Title: "1984", Author: "George Orwell", TotalCopies: 1},
		Found: true,
	}
}
