package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// ProjectMembership links a user with a project and captures their role/status.
// A (project_id, user_id) pair has at most one row.
type ProjectMembership struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID uuid.UUID              `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_project_memberships_project_user"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_project_memberships_project_user"`
	Role      enums.MemberRole       `gorm:"column:role;type:member_role;not null"`
	Status    enums.MembershipStatus `gorm:"column:status;type:membership_status;not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
