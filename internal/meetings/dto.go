package meetings

import (
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// Meeting is a scheduled sync with the organizer resolved for display.
type Meeting struct {
	ID            uuid.UUID           `json:"id"`
	ProjectID     uuid.UUID           `json:"project_id"`
	OrganizerID   uuid.UUID           `json:"organizer_id"`
	OrganizerName string              `json:"organizer_name"`
	Title         string              `json:"title"`
	Agenda        *string             `json:"agenda,omitempty"`
	Status        enums.MeetingStatus `json:"status"`
	StartsAt      time.Time           `json:"starts_at"`
	EndsAt        time.Time           `json:"ends_at"`
	CreatedAt     time.Time           `json:"created_at"`
}

// CreateMeetingInput captures a new meeting for a project.
type CreateMeetingInput struct {
	ProjectID   uuid.UUID
	OrganizerID uuid.UUID
	Title       string
	Agenda      *string
	StartsAt    time.Time
	EndsAt      time.Time
}

// UpdateMeetingInput reschedules or retitles a meeting. Nil fields are left
// untouched.
type UpdateMeetingInput struct {
	MeetingID   uuid.UUID
	ActorUserID uuid.UUID
	Title       *string
	Agenda      *string
	StartsAt    *time.Time
	EndsAt      *time.Time
}
