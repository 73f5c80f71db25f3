package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/pkg/pagination"
)

// Message is a chat message with its sender resolved for display.
type Message struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// MessageList is a cursor page of messages, newest first.
type MessageList struct {
	Messages   []Message `json:"messages"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// ListMessagesInput captures the inputs to page through a room's history.
type ListMessagesInput struct {
	ProjectID  uuid.UUID
	ViewerID   uuid.UUID
	Pagination pagination.Params
}

// PostMessageInput captures a new message for a project room.
type PostMessageInput struct {
	ProjectID uuid.UUID
	SenderID  uuid.UUID
	Body      string
}
