package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventChannel is the pub/sub channel all API instances share for chat fanout.
const EventChannel = "chat-events"

// Event names carried on the wire to connected clients.
const (
	EventNewMessage = "newMessage"
	EventUserTyping = "userTyping"
	EventUserJoined = "userJoined"
	EventUserLeft   = "userLeft"
)

// Event is a single room-scoped notification fanned out to project members.
type Event struct {
	Name      string          `json:"name"`
	ProjectID uuid.UUID       `json:"project_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	SentAt    time.Time       `json:"sent_at"`
}

// NewEvent stamps an event with the current time.
func NewEvent(name string, projectID, userID uuid.UUID, payload json.RawMessage) Event {
	return Event{
		Name:      name,
		ProjectID: projectID,
		UserID:    userID,
		Payload:   payload,
		SentAt:    time.Now().UTC(),
	}
}
