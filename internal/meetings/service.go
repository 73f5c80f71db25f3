package meetings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type membershipGate interface {
	IsAcceptedMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	GetMembershipStatus(ctx context.Context, projectID, userID uuid.UUID) (*memberships.MembershipStatus, error)
}

// Service exposes the project meeting operations.
type Service interface {
	ListMeetings(ctx context.Context, projectID, viewerID uuid.UUID) ([]Meeting, error)
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, input UpdateMeetingInput) (*models.Meeting, error)
	CancelMeeting(ctx context.Context, meetingID, userID uuid.UUID) error
}

type service struct {
	repo Repository
	gate membershipGate
}

// NewService builds a meetings service with the required dependencies.
func NewService(repo Repository, gate membershipGate) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("meetings repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("membership gate required")
	}
	return &service{repo: repo, gate: gate}, nil
}

func (s *service) ListMeetings(ctx context.Context, projectID, viewerID uuid.UUID) ([]Meeting, error) {
	if err := s.requireMember(ctx, projectID, viewerID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListMeetings(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list meetings")
	}
	return list, nil
}

func (s *service) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*models.Meeting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meeting title required")
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meeting start and end required")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meeting must end after it starts")
	}
	if err := s.requireMember(ctx, input.ProjectID, input.OrganizerID); err != nil {
		return nil, err
	}

	meeting, err := s.repo.CreateMeeting(ctx, &models.Meeting{
		ID:          uuid.New(),
		ProjectID:   input.ProjectID,
		OrganizerID: input.OrganizerID,
		Title:       title,
		Agenda:      input.Agenda,
		Status:      enums.MeetingStatusScheduled,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist meeting")
	}
	return meeting, nil
}

func (s *service) UpdateMeeting(ctx context.Context, input UpdateMeetingInput) (*models.Meeting, error) {
	meeting, err := s.loadForWrite(ctx, input.MeetingID, input.ActorUserID)
	if err != nil {
		return nil, err
	}
	if meeting.Status == enums.MeetingStatusCanceled {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidOperation, "canceled meetings cannot be edited")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "meeting title required")
		}
		meeting.Title = title
	}
	if input.Agenda != nil {
		meeting.Agenda = input.Agenda
	}
	if input.StartsAt != nil {
		meeting.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		meeting.EndsAt = *input.EndsAt
	}
	if !meeting.EndsAt.After(meeting.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meeting must end after it starts")
	}

	if err := s.repo.SaveMeeting(ctx, meeting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save meeting")
	}
	return meeting, nil
}

func (s *service) CancelMeeting(ctx context.Context, meetingID, userID uuid.UUID) error {
	meeting, err := s.loadForWrite(ctx, meetingID, userID)
	if err != nil {
		return err
	}

	rows, err := s.repo.MarkCanceled(ctx, meeting.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel meeting")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidOperation, "meeting is already canceled")
	}
	return nil
}

// loadForWrite fetches the meeting and enforces that only its organizer or
// the project creator may change it.
func (s *service) loadForWrite(ctx context.Context, meetingID, userID uuid.UUID) (*models.Meeting, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	meeting, err := s.repo.FindMeeting(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "meeting not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load meeting")
	}

	if meeting.OrganizerID != userID {
		status, err := s.gate.GetMembershipStatus(ctx, meeting.ProjectID, userID)
		if err != nil {
			return nil, err
		}
		if status.Role == nil || *status.Role != enums.MemberRoleCreator {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the organizer or project creator can modify meetings")
		}
	}
	return meeting, nil
}

func (s *service) requireMember(ctx context.Context, projectID, userID uuid.UUID) error {
	if projectID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	isMember, err := s.gate.IsAcceptedMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return pkgerrors.New(pkgerrors.CodeForbidden, "project meetings are member-only")
	}
	return nil
}
