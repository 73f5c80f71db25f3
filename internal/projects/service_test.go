package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type stubProjectsRepo struct {
	summaries map[uuid.UUID]ProjectSummary
	created   []ProjectSummary
	joined    []ProjectSummary
	listErr   error
}

func newStubProjectsRepo() *stubProjectsRepo {
	return &stubProjectsRepo{summaries: map[uuid.UUID]ProjectSummary{}}
}

func (s *stubProjectsRepo) ListProjects(_ context.Context, input ListProjectsInput) (*ProjectList, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]ProjectSummary, 0, len(s.summaries))
	for _, summary := range s.summaries {
		out = append(out, summary)
	}
	return &ProjectList{Projects: out}, nil
}

func (s *stubProjectsRepo) FindProjectSummary(_ context.Context, projectID, _ uuid.UUID) (*ProjectSummary, error) {
	summary, ok := s.summaries[projectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &summary, nil
}

func (s *stubProjectsRepo) ListCreated(_ context.Context, _ uuid.UUID) ([]ProjectSummary, error) {
	return s.created, nil
}

func (s *stubProjectsRepo) ListJoined(_ context.Context, _ uuid.UUID) ([]ProjectSummary, error) {
	return s.joined, nil
}

type stubGate struct {
	accepted map[uuid.UUID]bool
	members  []memberships.ProjectMember
	err      error
}

func (g *stubGate) IsAcceptedMember(_ context.Context, projectID, _ uuid.UUID) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	return g.accepted[projectID], nil
}

func (g *stubGate) ListProjectMembers(_ context.Context, _ uuid.UUID) ([]memberships.ProjectMember, error) {
	return g.members, nil
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNilf(t, typed, "expected coded error %s, got %v", code, err)
	require.Equal(t, code, typed.Code())
}

func TestSearchRequiresQuery(t *testing.T) {
	svc, err := NewService(newStubProjectsRepo(), &stubGate{})
	require.NoError(t, err)

	_, err = svc.Search(context.Background(), uuid.New(), "   ")
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestGetDetailMemberOnly(t *testing.T) {
	repo := newStubProjectsRepo()
	projectID := uuid.New()
	repo.summaries[projectID] = ProjectSummary{
		ID:           projectID,
		Title:        "Robotics Club Site",
		Status:       enums.ProjectStatusOpen,
		ViewerStatus: ViewerStatusNone,
	}

	svc, err := NewService(repo, &stubGate{accepted: map[uuid.UUID]bool{}})
	require.NoError(t, err)

	_, err = svc.GetDetail(context.Background(), projectID, uuid.New())
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestGetDetailReturnsRoster(t *testing.T) {
	repo := newStubProjectsRepo()
	projectID := uuid.New()
	viewerID := uuid.New()
	repo.summaries[projectID] = ProjectSummary{
		ID:           projectID,
		Title:        "Robotics Club Site",
		ViewerStatus: ViewerStatusMember,
	}
	gate := &stubGate{
		accepted: map[uuid.UUID]bool{projectID: true},
		members: []memberships.ProjectMember{
			{UserID: uuid.New(), Name: "ada", Role: enums.MemberRoleCreator},
			{UserID: viewerID, Name: "bea", Role: enums.MemberRoleMember},
		},
	}

	svc, err := NewService(repo, gate)
	require.NoError(t, err)

	detail, err := svc.GetDetail(context.Background(), projectID, viewerID)
	require.NoError(t, err)
	require.Equal(t, projectID, detail.Project.ID)
	require.Len(t, detail.Members, 2)
}

func TestGetDetailMissingProject(t *testing.T) {
	repo := newStubProjectsRepo()
	projectID := uuid.New()
	gate := &stubGate{accepted: map[uuid.UUID]bool{projectID: true}}

	svc, err := NewService(repo, gate)
	require.NoError(t, err)

	_, err = svc.GetDetail(context.Background(), projectID, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetDetailPropagatesGateError(t *testing.T) {
	gateErr := pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
	svc, err := NewService(newStubProjectsRepo(), &stubGate{err: gateErr})
	require.NoError(t, err)

	_, err = svc.GetDetail(context.Background(), uuid.New(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestListMineRequiresIdentity(t *testing.T) {
	svc, err := NewService(newStubProjectsRepo(), &stubGate{})
	require.NoError(t, err)

	_, err = svc.ListMine(context.Background(), uuid.Nil)
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestListMineSplitsCreatedAndJoined(t *testing.T) {
	repo := newStubProjectsRepo()
	repo.created = []ProjectSummary{{ID: uuid.New(), Title: "mine", ViewerStatus: ViewerStatusCreator}}
	repo.joined = []ProjectSummary{{ID: uuid.New(), Title: "theirs", ViewerStatus: ViewerStatusMember}}

	svc, err := NewService(repo, &stubGate{})
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, mine.Created, 1)
	require.Len(t, mine.Joined, 1)
	require.Equal(t, "mine", mine.Created[0].Title)
	require.Equal(t, "theirs", mine.Joined[0].Title)
}
