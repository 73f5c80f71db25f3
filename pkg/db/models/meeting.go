package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// Meeting is a scheduled sync for a project team.
type Meeting struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID   uuid.UUID           `gorm:"column:project_id;type:uuid;not null;index"`
	OrganizerID uuid.UUID           `gorm:"column:organizer_id;type:uuid;not null"`
	Title       string              `gorm:"column:title;not null"`
	Agenda      *string             `gorm:"column:agenda"`
	Status      enums.MeetingStatus `gorm:"column:status;type:meeting_status;not null;default:scheduled"`
	StartsAt    time.Time           `gorm:"column:starts_at;not null"`
	EndsAt      time.Time           `gorm:"column:ends_at;not null"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
