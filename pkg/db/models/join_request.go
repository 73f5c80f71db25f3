package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// JoinRequest is an applicant's pending/decided request to join a project.
type JoinRequest struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID       uuid.UUID               `gorm:"column:project_id;type:uuid;not null;index"`
	RequesterID     uuid.UUID               `gorm:"column:requester_id;type:uuid;not null;index"`
	Status          enums.JoinRequestStatus `gorm:"column:status;type:join_request_status;not null;default:pending"`
	Message         *string                 `gorm:"column:message"`
	DecidedByUserID *uuid.UUID              `gorm:"column:decided_by_user_id;type:uuid"`
	DecidedAt       *time.Time              `gorm:"column:decided_at"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
