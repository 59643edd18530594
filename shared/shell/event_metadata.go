package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the command that caused this event.
type CausationID = string

// CorrelationID represents the ID correlating everything triggered by one request.
type CorrelationID = string

// EventMetadata contains event tracking information. It is stored with every audit entry.
type EventMetadata struct {
	MessageID     MessageID     `json:"message_id"`
	CausationID   CausationID   `json:"causation_id"`
	CorrelationID CorrelationID `json:"correlation_id"`
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// EventMetadataFrom extracts the EventMetadata from a stored audit payload.
func EventMetadataFrom(payload string) (EventMetadata, error) {
	envelope := new(struct {
		Metadata EventMetadata `json:"metadata"`
	})

	if err := jsoniter.ConfigFastest.UnmarshalFromString(payload, envelope); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return envelope.Metadata, nil
}

type correlationKey struct{}

// WithCorrelationID returns a context carrying the correlation id for the commands it triggers.
func WithCorrelationID(ctx context.Context, correlationID uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationKey{}, correlationID)
}

// CorrelationIDFrom returns the correlation id stored in ctx, if any.
func CorrelationIDFrom(ctx context.Context) (uuid.UUID, bool) {
	correlationID, ok := ctx.Value(correlationKey{}).(uuid.UUID)
	return correlationID, ok
}

// NewCommandMessageID returns the message id of a command and the correlation id to use with it.
// Without a correlation id in ctx, the command starts its own correlation.
func NewCommandMessageID(ctx context.Context) (messageID uuid.UUID, correlationID uuid.UUID) {
	messageID = uuid.New()

	if correlationID, ok := CorrelationIDFrom(ctx); ok {
		return messageID, correlationID
	}

	return messageID, messageID
}
