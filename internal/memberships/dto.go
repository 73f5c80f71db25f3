package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// CreateProjectInput captures everything needed to open a new project.
type CreateProjectInput struct {
	CreatorID      uuid.UUID
	Title          string
	Description    string
	RequiredSkills []string
	MaxMembers     int
	Visibility     enums.ProjectVisibility
}

// RequestToJoinInput carries a join request from an applicant.
type RequestToJoinInput struct {
	ProjectID   uuid.UUID
	RequesterID uuid.UUID
	Message     *string
}

// ActionRequestInput captures the creator's decision on a pending request.
type ActionRequestInput struct {
	ProjectID   uuid.UUID
	RequestID   uuid.UUID
	ActorUserID uuid.UUID
	Decision    enums.RequestDecision
}

// MembershipStatus summarizes a user's relationship with a project.
type MembershipStatus struct {
	IsMember         bool                    `json:"is_member"`
	Role             *enums.MemberRole       `json:"role,omitempty"`
	Status           *enums.MembershipStatus `json:"status,omitempty"`
	CanLeave         bool                    `json:"can_leave"`
	PendingRequestID *uuid.UUID              `json:"pending_request_id,omitempty"`
}

// SentRequest is a join request from the requester's point of view.
type SentRequest struct {
	RequestID    uuid.UUID               `json:"request_id"`
	ProjectID    uuid.UUID               `json:"project_id"`
	ProjectTitle string                  `json:"project_title"`
	Status       enums.JoinRequestStatus `json:"status"`
	Message      *string                 `json:"message,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

// ReceivedRequest is a join request from the project creator's point of view.
type ReceivedRequest struct {
	RequestID      uuid.UUID               `json:"request_id"`
	ProjectID      uuid.UUID               `json:"project_id"`
	ProjectTitle   string                  `json:"project_title"`
	RequesterID    uuid.UUID               `json:"requester_id"`
	RequesterName  string                  `json:"requester_name"`
	RequesterEmail string                  `json:"requester_email"`
	Status         enums.JoinRequestStatus `json:"status"`
	Message        *string                 `json:"message,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// ProjectMember is one row of a project's roster, creator included.
type ProjectMember struct {
	UserID   uuid.UUID        `json:"user_id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Role     enums.MemberRole `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}
