package messages

import (
	"encoding/json"
	"time"
)

const (
	// MessageBufferSize is the largest event message read from a stream client
	MessageBufferSize = 1024
)

// Message types
const (
	MessageTypeEvent = "event"
	MessageTypeError = "error"
)

// EventMessage is the envelope for a game event forwarded to stream clients.
type EventMessage struct {
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// NewEventMessage wraps an event payload. The payload must be JSON-encodable.
func NewEventMessage(name string, data any, now time.Time) (*EventMessage, error) {
	m := &EventMessage{
		Type:      MessageTypeEvent,
		Name:      name,
		Timestamp: now.UnixMilli(),
	}
	if data == nil {
		return m, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	m.Data = b
	return m, nil
}

// NewErrorMessage reports a failure to a stream client.
func NewErrorMessage(msg string, now time.Time) *EventMessage {
	data, _ := json.Marshal(msg)
	return &EventMessage{
		Type:      MessageTypeError,
		Data:      data,
		Timestamp: now.UnixMilli(),
	}
}
