package meetings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type stubMeetingsRepo struct {
	meetings map[uuid.UUID]*models.Meeting
}

func newStubMeetingsRepo() *stubMeetingsRepo {
	return &stubMeetingsRepo{meetings: map[uuid.UUID]*models.Meeting{}}
}

func (s *stubMeetingsRepo) CreateMeeting(_ context.Context, meeting *models.Meeting) (*models.Meeting, error) {
	s.meetings[meeting.ID] = meeting
	return meeting, nil
}

func (s *stubMeetingsRepo) FindMeeting(_ context.Context, meetingID uuid.UUID) (*models.Meeting, error) {
	meeting, ok := s.meetings[meetingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *meeting
	return &copied, nil
}

func (s *stubMeetingsRepo) ListMeetings(_ context.Context, projectID uuid.UUID) ([]Meeting, error) {
	var out []Meeting
	for _, meeting := range s.meetings {
		if meeting.ProjectID == projectID {
			out = append(out, Meeting{ID: meeting.ID, Title: meeting.Title, Status: meeting.Status})
		}
	}
	return out, nil
}

func (s *stubMeetingsRepo) SaveMeeting(_ context.Context, meeting *models.Meeting) error {
	s.meetings[meeting.ID] = meeting
	return nil
}

func (s *stubMeetingsRepo) MarkCanceled(_ context.Context, meetingID uuid.UUID) (int64, error) {
	meeting, ok := s.meetings[meetingID]
	if !ok || meeting.Status != enums.MeetingStatusScheduled {
		return 0, nil
	}
	meeting.Status = enums.MeetingStatusCanceled
	return 1, nil
}

type stubMeetingsGate struct {
	accepted map[uuid.UUID]bool
	creators map[uuid.UUID]uuid.UUID
}

func (g *stubMeetingsGate) IsAcceptedMember(_ context.Context, projectID, _ uuid.UUID) (bool, error) {
	return g.accepted[projectID], nil
}

func (g *stubMeetingsGate) GetMembershipStatus(_ context.Context, projectID, userID uuid.UUID) (*memberships.MembershipStatus, error) {
	role := enums.MemberRoleMember
	if g.creators[projectID] == userID {
		role = enums.MemberRoleCreator
	}
	return &memberships.MembershipStatus{IsMember: true, Role: &role}, nil
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNilf(t, typed, "expected coded error %s, got %v", code, err)
	require.Equal(t, code, typed.Code())
}

func scheduleWindow() (time.Time, time.Time) {
	starts := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	return starts, starts.Add(time.Hour)
}

func TestCreateMeetingValidation(t *testing.T) {
	projectID := uuid.New()
	svc, err := NewService(newStubMeetingsRepo(), &stubMeetingsGate{accepted: map[uuid.UUID]bool{projectID: true}})
	require.NoError(t, err)

	starts, ends := scheduleWindow()

	_, err = svc.CreateMeeting(context.Background(), CreateMeetingInput{
		ProjectID: projectID, OrganizerID: uuid.New(), Title: " ", StartsAt: starts, EndsAt: ends,
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateMeeting(context.Background(), CreateMeetingInput{
		ProjectID: projectID, OrganizerID: uuid.New(), Title: "standup", StartsAt: ends, EndsAt: starts,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateMeetingMemberOnly(t *testing.T) {
	svc, err := NewService(newStubMeetingsRepo(), &stubMeetingsGate{accepted: map[uuid.UUID]bool{}})
	require.NoError(t, err)

	starts, ends := scheduleWindow()
	_, err = svc.CreateMeeting(context.Background(), CreateMeetingInput{
		ProjectID: uuid.New(), OrganizerID: uuid.New(), Title: "standup", StartsAt: starts, EndsAt: ends,
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateMeetingPermissions(t *testing.T) {
	projectID := uuid.New()
	organizerID := uuid.New()
	creatorID := uuid.New()
	strangerID := uuid.New()

	repo := newStubMeetingsRepo()
	starts, ends := scheduleWindow()
	meetingID := uuid.New()
	repo.meetings[meetingID] = &models.Meeting{
		ID: meetingID, ProjectID: projectID, OrganizerID: organizerID,
		Title: "standup", Status: enums.MeetingStatusScheduled, StartsAt: starts, EndsAt: ends,
	}

	gate := &stubMeetingsGate{
		accepted: map[uuid.UUID]bool{projectID: true},
		creators: map[uuid.UUID]uuid.UUID{projectID: creatorID},
	}
	svc, err := NewService(repo, gate)
	require.NoError(t, err)

	newTitle := "retro"
	_, err = svc.UpdateMeeting(context.Background(), UpdateMeetingInput{
		MeetingID: meetingID, ActorUserID: strangerID, Title: &newTitle,
	})
	assertCode(t, err, pkgerrors.CodeForbidden)

	// project creator may edit meetings they did not organize
	updated, err := svc.UpdateMeeting(context.Background(), UpdateMeetingInput{
		MeetingID: meetingID, ActorUserID: creatorID, Title: &newTitle,
	})
	require.NoError(t, err)
	require.Equal(t, "retro", updated.Title)
}

func TestUpdateMeetingRejectsInvertedWindow(t *testing.T) {
	projectID := uuid.New()
	organizerID := uuid.New()

	repo := newStubMeetingsRepo()
	starts, ends := scheduleWindow()
	meetingID := uuid.New()
	repo.meetings[meetingID] = &models.Meeting{
		ID: meetingID, ProjectID: projectID, OrganizerID: organizerID,
		Title: "standup", Status: enums.MeetingStatusScheduled, StartsAt: starts, EndsAt: ends,
	}

	svc, err := NewService(repo, &stubMeetingsGate{accepted: map[uuid.UUID]bool{projectID: true}})
	require.NoError(t, err)

	badEnd := starts.Add(-time.Hour)
	_, err = svc.UpdateMeeting(context.Background(), UpdateMeetingInput{
		MeetingID: meetingID, ActorUserID: organizerID, EndsAt: &badEnd,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCancelMeetingTwice(t *testing.T) {
	projectID := uuid.New()
	organizerID := uuid.New()

	repo := newStubMeetingsRepo()
	starts, ends := scheduleWindow()
	meetingID := uuid.New()
	repo.meetings[meetingID] = &models.Meeting{
		ID: meetingID, ProjectID: projectID, OrganizerID: organizerID,
		Title: "standup", Status: enums.MeetingStatusScheduled, StartsAt: starts, EndsAt: ends,
	}

	svc, err := NewService(repo, &stubMeetingsGate{accepted: map[uuid.UUID]bool{projectID: true}})
	require.NoError(t, err)

	require.NoError(t, svc.CancelMeeting(context.Background(), meetingID, organizerID))

	err = svc.CancelMeeting(context.Background(), meetingID, organizerID)
	assertCode(t, err, pkgerrors.CodeInvalidOperation)
}
