package audittrail_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/features/query/audittrail"
	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

func Test_Project_DecodesPayload(t *testing.T) {
	// arrange
	payload := `{"event":{"patron":{"id":7}},"metadata":{"message_id":"m","causation_id":"c","correlation_id":"r"}}`
	entries := []core.AuditEntry{
		{ID: 1, ActorType: core.ActorAdmin, Action: "patron_approved", EntityType: core.EntityPatron, Payload: &payload, CreatedAt: time.Now()},
	}

	// act
	result := audittrail.Project(entries)

	// assert
	require.Equal(t, 1, result.Count)
	require.NotNil(t, result.Entries[0].Metadata)
	assert.Equal(t, "m", result.Entries[0].Metadata.MessageID)
	assert.Equal(t, "c", result.Entries[0].Metadata.CausationID)
	assert.Equal(t, "r", result.Entries[0].Metadata.CorrelationID)
	assert.JSONEq(t, `{"patron":{"id":7}}`, string(result.Entries[0].Event))
}

func Test_Project_KeepsEntriesWithUnreadablePayload(t *testing.T) {
	// arrange
	broken := "{not json"
	entries := []core.AuditEntry{
		{ID: 2, ActorType: core.ActorSystem, Action: "loan_returned", EntityType: core.EntityLoan, Payload: &broken},
		{ID: 1, ActorType: core.ActorSystem, Action: "loan_opened", EntityType: core.EntityLoan},
	}

	// act
	result := audittrail.Project(entries)

	// assert
	require.Equal(t, 2, result.Count)
	assert.Nil(t, result.Entries[0].Event)
	assert.Nil(t, result.Entries[0].Metadata)
	assert.Equal(t, "loan_opened", result.Entries[1].Action)
	assert.Nil(t, result.Entries[1].Metadata)
}
