package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// Task is a project board item.
type Task struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID   uuid.UUID        `gorm:"column:project_id;type:uuid;not null;index"`
	CreatorID   uuid.UUID        `gorm:"column:creator_id;type:uuid;not null"`
	AssigneeID  *uuid.UUID       `gorm:"column:assignee_id;type:uuid"`
	Title       string           `gorm:"column:title;not null"`
	Description *string          `gorm:"column:description"`
	Status      enums.TaskStatus `gorm:"column:status;type:task_status;not null;default:todo"`
	DueAt       *time.Time       `gorm:"column:due_at"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
