package extendreservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/features/command/extendreservation"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

var now = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func Test_Decide_Success_ExtendsFromExpiry_WhenStillRunning(t *testing.T) {
	// arrange
	expiresAt := now.Add(2 * 24 * time.Hour)
	command := extendreservation.BuildCommand(5, 7, core.PatronActor(7), now)
	s := givenState(expiresAt, core.ReservationStatusActive)

	// act
	result := extendreservation.Decide(command, s)

	// assert
	assert.NoError(t, result.HasError())
	extended, ok := result.Events[0].(core.ReservationExtended)
	assert.True(t, ok, "should be a ReservationExtended event")
	assert.Equal(t, expiresAt.Add(7*24*time.Hour), extended.ExpiresAt)
}

func Test_Decide_Success_ExtendsFromNow_WhenStoredActiveButPastExpiry(t *testing.T) {
	// arrange
	command := extendreservation.BuildCommand(5, 7, core.PatronActor(7), now)
	s := givenState(now.Add(-3*24*time.Hour), core.ReservationStatusActive)

	// act
	result := extendreservation.Decide(command, s)

	// assert
	assert.NoError(t, result.HasError())
	extended, ok := result.Events[0].(core.ReservationExtended)
	assert.True(t, ok, "should be a ReservationExtended event")
	assert.Equal(t, now.Add(7*24*time.Hour), extended.ExpiresAt)
	assert.True(t, extended.ExpiresAt.After(now))
}

func Test_Decide_Errors(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		state    extendreservation.State
		expected error
	}{
		{"zero days", 0, givenState(now, core.ReservationStatusActive), core.ErrInvalidInput},
		{"unknown reservation", 7, extendreservation.State{}, core.ErrNotFound},
		{"fulfilled", 7, givenState(now, core.ReservationStatusFulfilled), core.ErrAlreadyTerminal},
		{"cancelled", 7, givenState(now, core.ReservationStatusCancelled), core.ErrAlreadyTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			command := extendreservation.BuildCommand(5, tt.days, core.PatronActor(7), now)

			// act
			result := extendreservation.Decide(command, tt.state)

			// assert
			assert.ErrorIs(t, result.HasError(), tt.expected)
		})
	}
}

func givenState(expiresAt time.Time, status core.ReservationStatus) extendreservation.State {
	return extendreservation.State{
		Reservation: core.Reservation{ID: 5, PatronID: 7, TitleID: 3, ReservedAt: now.Add(-5 * 24 * time.Hour), ExpiresAt: expiresAt, Status: status},
		Found:       true,
	}
}
