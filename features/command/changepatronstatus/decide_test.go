package changepatronstatus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/features/command/changepatronstatus"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

var now = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func Test_Decide(t *testing.T) {
	tests := []struct {
		name       string
		active     bool
		wasActive  bool
		idempotent bool
		expected   core.DomainEvent
	}{
		{"deactivate", false, true, false, core.PatronDeactivated{}},
		{"reactivate", true, false, false, core.PatronReactivated{}},
		{"already active", true, true, true, nil},
		{"already inactive", false, false, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			command := changepatronstatus.BuildCommand(7, tt.active, core.AdminActor(nil), now)
			s := changepatronstatus.State{Patron: core.Patron{ID: 7, Approved: true, Active: tt.wasActive}, Found: true}

			// act
			result := changepatronstatus.Decide(command, s)

			// assert
			assert.NoError(t, result.HasError())
			assert.Equal(t, tt.idempotent, result.IsIdempotent())
			if tt.expected != nil {
				assert.IsType(t, tt.expected, result.Events[0])
			}
		})
	}
}

func Test_Decide_Error_WhenPatronIsUnknown(t *testing.T) {
	// arrange
	command := changepatronstatus.BuildCommand(7, false, core.AdminActor(nil), now)

	// act
	result := changepatronstatus.Decide(command, changepatronstatus.State{})

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}
