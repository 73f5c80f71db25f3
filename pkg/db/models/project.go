package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// Project is the canonical project listing, including the denormalized
// member counter maintained by the membership service.
type Project struct {
	ID             uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID      uuid.UUID               `gorm:"column:creator_id;type:uuid;not null"`
	Title          string                  `gorm:"column:title;not null"`
	Description    string                  `gorm:"column:description;not null"`
	RequiredSkills pq.StringArray          `gorm:"column:required_skills;type:text[];not null;default:'{}'"`
	Status         enums.ProjectStatus     `gorm:"column:status;type:project_status;not null;default:open"`
	Visibility     enums.ProjectVisibility `gorm:"column:visibility;type:project_visibility;not null;default:public"`
	MaxMembers     int                     `gorm:"column:max_members;not null;default:5"`
	CurrentMembers int                     `gorm:"column:current_members;not null;default:1"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
