package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// Task is a project board item with names resolved for display.
type Task struct {
	ID           uuid.UUID        `json:"id"`
	ProjectID    uuid.UUID        `json:"project_id"`
	CreatorID    uuid.UUID        `json:"creator_id"`
	AssigneeID   *uuid.UUID       `json:"assignee_id,omitempty"`
	AssigneeName *string          `json:"assignee_name,omitempty"`
	Title        string           `json:"title"`
	Description  *string          `json:"description,omitempty"`
	Status       enums.TaskStatus `json:"status"`
	DueAt        *time.Time       `json:"due_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// CreateTaskInput captures a new board item.
type CreateTaskInput struct {
	ProjectID   uuid.UUID
	CreatorID   uuid.UUID
	AssigneeID  *uuid.UUID
	Title       string
	Description *string
	DueAt       *time.Time
}

// UpdateTaskStatusInput moves a task across the board.
type UpdateTaskStatusInput struct {
	TaskID      uuid.UUID
	ActorUserID uuid.UUID
	Status      enums.TaskStatus
}
