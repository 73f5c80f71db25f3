package projects

import (
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	"github.com/synapsehq/synapse-backend/pkg/pagination"
)

// ViewerStatus marks the browsing user's relationship with a listed project.
type ViewerStatus string

const (
	ViewerStatusNone     ViewerStatus = "none"
	ViewerStatusCreator  ViewerStatus = "creator"
	ViewerStatusMember   ViewerStatus = "member"
	ViewerStatusPending  ViewerStatus = "pending"
	ViewerStatusRejected ViewerStatus = "rejected"
)

// ProjectSummary is the browse/list shape for a project.
type ProjectSummary struct {
	ID             uuid.UUID               `json:"id"`
	CreatorID      uuid.UUID               `json:"creator_id"`
	CreatorName    string                  `json:"creator_name"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	RequiredSkills []string                `json:"required_skills"`
	Status         enums.ProjectStatus     `json:"status"`
	Visibility     enums.ProjectVisibility `json:"visibility"`
	MaxMembers     int                     `json:"max_members"`
	CurrentMembers int                     `json:"current_members"`
	ViewerStatus   ViewerStatus            `json:"viewer_status"`
	CreatedAt      time.Time               `json:"created_at"`
}

// ProjectList is a cursor page of project summaries.
type ProjectList struct {
	Projects   []ProjectSummary `json:"projects"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ProjectListFilters describe the supported filter knobs for browsing.
type ProjectListFilters struct {
	Query  string               `json:"q,omitempty"`
	Status *enums.ProjectStatus `json:"status,omitempty"`
}

// ListProjectsInput captures the inputs needed to paginate/filter projects.
type ListProjectsInput struct {
	ViewerID   uuid.UUID
	Filters    ProjectListFilters
	Pagination pagination.Params
}

// ProjectDetail joins the project with its current roster.
type ProjectDetail struct {
	Project ProjectSummary              `json:"project"`
	Members []memberships.ProjectMember `json:"members"`
}

// MyProjects splits a user's projects by how they relate to them.
type MyProjects struct {
	Created []ProjectSummary `json:"created"`
	Joined  []ProjectSummary `json:"joined"`
}
