package memberships

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type stubMembershipsRepo struct {
	projects    map[uuid.UUID]*models.Project
	memberships map[string]*models.ProjectMembership
	requests    map[uuid.UUID]*models.JoinRequest

	incrementErr     error
	incrementErrOnce bool
	upsertCalls      int
	incrementCalls   int
	decrementCalls   int
}

func newStubRepo() *stubMembershipsRepo {
	return &stubMembershipsRepo{
		projects:    make(map[uuid.UUID]*models.Project),
		memberships: make(map[string]*models.ProjectMembership),
		requests:    make(map[uuid.UUID]*models.JoinRequest),
	}
}

func pairKey(projectID, userID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", projectID, userID)
}

func (s *stubMembershipsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubMembershipsRepo) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	s.projects[project.ID] = project
	return project, nil
}

func (s *stubMembershipsRepo) FindProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	project, ok := s.projects[projectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *project
	return &copied, nil
}

func (s *stubMembershipsRepo) CreateMembership(ctx context.Context, membership *models.ProjectMembership) (*models.ProjectMembership, error) {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	s.memberships[pairKey(membership.ProjectID, membership.UserID)] = membership
	return membership, nil
}

func (s *stubMembershipsRepo) FindMembership(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMembership, error) {
	membership, ok := s.memberships[pairKey(projectID, userID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return membership, nil
}

func (s *stubMembershipsRepo) UpsertAcceptedMembership(ctx context.Context, projectID, userID uuid.UUID) error {
	s.upsertCalls++
	key := pairKey(projectID, userID)
	if existing, ok := s.memberships[key]; ok {
		existing.Role = enums.MemberRoleMember
		existing.Status = enums.MembershipStatusAccepted
		return nil
	}
	s.memberships[key] = &models.ProjectMembership{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      enums.MemberRoleMember,
		Status:    enums.MembershipStatusAccepted,
	}
	return nil
}

func (s *stubMembershipsRepo) DeleteAcceptedMembership(ctx context.Context, projectID, userID uuid.UUID) (int64, error) {
	key := pairKey(projectID, userID)
	membership, ok := s.memberships[key]
	if !ok || membership.Status != enums.MembershipStatusAccepted {
		return 0, nil
	}
	delete(s.memberships, key)
	return 1, nil
}

func (s *stubMembershipsRepo) HasAcceptedMembership(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	membership, ok := s.memberships[pairKey(projectID, userID)]
	return ok && membership.Status == enums.MembershipStatusAccepted, nil
}

func (s *stubMembershipsRepo) CreateJoinRequest(ctx context.Context, request *models.JoinRequest) (*models.JoinRequest, error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	s.requests[request.ID] = request
	return request, nil
}

func (s *stubMembershipsRepo) FindJoinRequest(ctx context.Context, requestID uuid.UUID) (*models.JoinRequest, error) {
	request, ok := s.requests[requestID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (s *stubMembershipsRepo) FindPendingRequest(ctx context.Context, projectID, userID uuid.UUID) (*models.JoinRequest, error) {
	for _, request := range s.requests {
		if request.ProjectID == projectID && request.RequesterID == userID && request.Status == enums.JoinRequestStatusPending {
			return request, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubMembershipsRepo) HasPendingRequest(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	_, err := s.FindPendingRequest(ctx, projectID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *stubMembershipsRepo) MarkRequestDecided(ctx context.Context, requestID uuid.UUID, status enums.JoinRequestStatus, decidedBy uuid.UUID) (int64, error) {
	request, ok := s.requests[requestID]
	if !ok || request.Status != enums.JoinRequestStatusPending {
		return 0, nil
	}
	request.Status = status
	request.DecidedByUserID = &decidedBy
	return 1, nil
}

func (s *stubMembershipsRepo) DeleteJoinRequest(ctx context.Context, requestID uuid.UUID) (int64, error) {
	if _, ok := s.requests[requestID]; !ok {
		return 0, nil
	}
	delete(s.requests, requestID)
	return 1, nil
}

func (s *stubMembershipsRepo) IncrementMemberCount(ctx context.Context, projectID uuid.UUID) (int64, error) {
	s.incrementCalls++
	if s.incrementErr != nil {
		err := s.incrementErr
		if s.incrementErrOnce {
			s.incrementErr = nil
		}
		return 0, err
	}
	project, ok := s.projects[projectID]
	if !ok || project.CurrentMembers >= project.MaxMembers {
		return 0, nil
	}
	project.CurrentMembers++
	return 1, nil
}

func (s *stubMembershipsRepo) DecrementMemberCount(ctx context.Context, projectID uuid.UUID) (int64, error) {
	s.decrementCalls++
	project, ok := s.projects[projectID]
	if !ok || project.CurrentMembers <= 1 {
		return 0, nil
	}
	project.CurrentMembers--
	return 1, nil
}

func (s *stubMembershipsRepo) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]SentRequest, error) {
	out := []SentRequest{}
	for _, request := range s.requests {
		if request.RequesterID == userID {
			out = append(out, SentRequest{
				RequestID: request.ID,
				ProjectID: request.ProjectID,
				Status:    request.Status,
			})
		}
	}
	return out, nil
}

func (s *stubMembershipsRepo) ListReceivedRequests(ctx context.Context, creatorID uuid.UUID) ([]ReceivedRequest, error) {
	out := []ReceivedRequest{}
	for _, request := range s.requests {
		project, ok := s.projects[request.ProjectID]
		if ok && project.CreatorID == creatorID {
			out = append(out, ReceivedRequest{
				RequestID:   request.ID,
				ProjectID:   request.ProjectID,
				RequesterID: request.RequesterID,
				Status:      request.Status,
			})
		}
	}
	return out, nil
}

func (s *stubMembershipsRepo) ListProjectMembers(ctx context.Context, projectID uuid.UUID) ([]ProjectMember, error) {
	out := []ProjectMember{}
	for _, membership := range s.memberships {
		if membership.ProjectID == projectID && membership.Status == enums.MembershipStatusAccepted {
			out = append(out, ProjectMember{
				UserID: membership.UserID,
				Role:   membership.Role,
			})
		}
	}
	return out, nil
}

type countingTxRunner struct {
	calls int
}

func (c *countingTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	c.calls++
	return fn(nil)
}

func seedProject(repo *stubMembershipsRepo, creatorID uuid.UUID, maxMembers, currentMembers int) *models.Project {
	project := &models.Project{
		ID:             uuid.New(),
		CreatorID:      creatorID,
		Title:          "Study Buddy",
		Description:    "Flashcard app for finals week",
		Status:         enums.ProjectStatusOpen,
		Visibility:     enums.ProjectVisibilityPublic,
		MaxMembers:     maxMembers,
		CurrentMembers: currentMembers,
	}
	repo.projects[project.ID] = project
	repo.memberships[pairKey(project.ID, creatorID)] = &models.ProjectMembership{
		ID:        uuid.New(),
		ProjectID: project.ID,
		UserID:    creatorID,
		Role:      enums.MemberRoleCreator,
		Status:    enums.MembershipStatusAccepted,
	}
	return project
}

func seedPendingRequest(repo *stubMembershipsRepo, projectID, requesterID uuid.UUID) *models.JoinRequest {
	request := &models.JoinRequest{
		ID:          uuid.New(),
		ProjectID:   projectID,
		RequesterID: requesterID,
		Status:      enums.JoinRequestStatusPending,
	}
	repo.requests[request.ID] = request
	return request
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error %s, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestCreateProject(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo, &countingTxRunner{})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	creatorID := uuid.New()
	project, err := svc.CreateProject(context.Background(), CreateProjectInput{
		CreatorID:      creatorID,
		Title:          "Campus Compost",
		Description:    "Track compost bins across dorms",
		RequiredSkills: []string{"go", "react"},
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if project.CurrentMembers != 1 {
		t.Fatalf("expected current members 1, got %d", project.CurrentMembers)
	}
	if project.MaxMembers != defaultMaxMembers {
		t.Fatalf("expected default max members %d, got %d", defaultMaxMembers, project.MaxMembers)
	}
	if project.Status != enums.ProjectStatusOpen {
		t.Fatalf("expected open status, got %s", project.Status)
	}

	membership, ok := repo.memberships[pairKey(project.ID, creatorID)]
	if !ok {
		t.Fatalf("expected creator membership row")
	}
	if membership.Role != enums.MemberRoleCreator || membership.Status != enums.MembershipStatusAccepted {
		t.Fatalf("unexpected creator membership %s/%s", membership.Role, membership.Status)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	svc, _ := NewService(newStubRepo(), &countingTxRunner{})

	_, err := svc.CreateProject(context.Background(), CreateProjectInput{
		CreatorID:   uuid.New(),
		Description: "no title",
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateProject(context.Background(), CreateProjectInput{
		CreatorID:      uuid.New(),
		Title:          "bad cap",
		Description:    "x",
		RequiredSkills: []string{"go"},
		MaxMembers:     -3,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateProjectRequiresSkills(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo, &countingTxRunner{})

	_, err := svc.CreateProject(context.Background(), CreateProjectInput{
		CreatorID:   uuid.New(),
		Title:       "No Skills Listed",
		Description: "missing the skill set",
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateProject(context.Background(), CreateProjectInput{
		CreatorID:      uuid.New(),
		Title:          "Empty Skills",
		Description:    "explicitly empty skill set",
		RequiredSkills: []string{},
	})
	assertCode(t, err, pkgerrors.CodeValidation)
	if len(repo.projects) != 0 {
		t.Fatalf("no project should be created without skills")
	}
}

func TestRequestToJoin(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 1)
	svc, _ := NewService(repo, &countingTxRunner{})

	requesterID := uuid.New()
	request, err := svc.RequestToJoin(context.Background(), RequestToJoinInput{
		ProjectID:   project.ID,
		RequesterID: requesterID,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if request.Status != enums.JoinRequestStatusPending {
		t.Fatalf("expected pending request, got %s", request.Status)
	}
}

func TestRequestToJoinOwnProject(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 1)
	svc, _ := NewService(repo, &countingTxRunner{})

	_, err := svc.RequestToJoin(context.Background(), RequestToJoinInput{
		ProjectID:   project.ID,
		RequesterID: creatorID,
	})
	assertCode(t, err, pkgerrors.CodeInvalidOperation)
}

func TestRequestToJoinAlreadyMember(t *testing.T) {
	repo := newStubRepo()
	project := seedProject(repo, uuid.New(), 5, 2)
	memberID := uuid.New()
	repo.memberships[pairKey(project.ID, memberID)] = &models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    memberID,
		Role:      enums.MemberRoleMember,
		Status:    enums.MembershipStatusAccepted,
	}
	svc, _ := NewService(repo, &countingTxRunner{})

	_, err := svc.RequestToJoin(context.Background(), RequestToJoinInput{
		ProjectID:   project.ID,
		RequesterID: memberID,
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestRequestToJoinDuplicatePending(t *testing.T) {
	repo := newStubRepo()
	project := seedProject(repo, uuid.New(), 5, 1)
	requesterID := uuid.New()
	seedPendingRequest(repo, project.ID, requesterID)
	svc, _ := NewService(repo, &countingTxRunner{})

	_, err := svc.RequestToJoin(context.Background(), RequestToJoinInput{
		ProjectID:   project.ID,
		RequesterID: requesterID,
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestRequestToJoinAfterRejectionAllowed(t *testing.T) {
	repo := newStubRepo()
	project := seedProject(repo, uuid.New(), 5, 1)
	requesterID := uuid.New()
	rejected := seedPendingRequest(repo, project.ID, requesterID)
	rejected.Status = enums.JoinRequestStatusRejected
	svc, _ := NewService(repo, &countingTxRunner{})

	_, err := svc.RequestToJoin(context.Background(), RequestToJoinInput{
		ProjectID:   project.ID,
		RequesterID: requesterID,
	})
	if err != nil {
		t.Fatalf("rejection history should not block a new request: %v", err)
	}
}

func TestRequestToJoinMissingProject(t *testing.T) {
	svc, _ := NewService(newStubRepo(), &countingTxRunner{})
	_, err := svc.RequestToJoin(context.Background(), RequestToJoinInput{
		ProjectID:   uuid.New(),
		RequesterID: uuid.New(),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestActionRequestAccept(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 1)
	requesterID := uuid.New()
	request := seedPendingRequest(repo, project.ID, requesterID)
	svc, _ := NewService(repo, &countingTxRunner{})

	decided, err := svc.ActionRequest(context.Background(), ActionRequestInput{
		ProjectID:   project.ID,
		RequestID:   request.ID,
		ActorUserID: creatorID,
		Decision:    enums.RequestDecisionAccept,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if decided.CurrentMembers != 2 {
		t.Fatalf("expected member count 2, got %d", decided.CurrentMembers)
	}
	if repo.requests[request.ID].Status != enums.JoinRequestStatusAccepted {
		t.Fatalf("expected accepted request, got %s", repo.requests[request.ID].Status)
	}
	membership, ok := repo.memberships[pairKey(project.ID, requesterID)]
	if !ok {
		t.Fatalf("expected membership row after accept")
	}
	if membership.Role != enums.MemberRoleMember || membership.Status != enums.MembershipStatusAccepted {
		t.Fatalf("unexpected membership %s/%s", membership.Role, membership.Status)
	}
}

func TestActionRequestReject(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 1)
	request := seedPendingRequest(repo, project.ID, uuid.New())
	svc, _ := NewService(repo, &countingTxRunner{})

	decided, err := svc.ActionRequest(context.Background(), ActionRequestInput{
		ProjectID:   project.ID,
		RequestID:   request.ID,
		ActorUserID: creatorID,
		Decision:    enums.RequestDecisionReject,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if decided.CurrentMembers != 1 {
		t.Fatalf("reject must not change member count, got %d", decided.CurrentMembers)
	}
	if repo.requests[request.ID].Status != enums.JoinRequestStatusRejected {
		t.Fatalf("expected rejected request, got %s", repo.requests[request.ID].Status)
	}
	if repo.upsertCalls != 0 {
		t.Fatalf("reject must not create a membership")
	}
}

func TestActionRequestCapacityExceeded(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 2, 2)
	request := seedPendingRequest(repo, project.ID, uuid.New())
	tx := &countingTxRunner{}
	svc, _ := NewService(repo, tx)

	_, err := svc.ActionRequest(context.Background(), ActionRequestInput{
		ProjectID:   project.ID,
		RequestID:   request.ID,
		ActorUserID: creatorID,
		Decision:    enums.RequestDecisionAccept,
	})
	assertCode(t, err, pkgerrors.CodeCapacityExceeded)
	if repo.requests[request.ID].Status != enums.JoinRequestStatusPending {
		t.Fatalf("request must stay pending when capacity is exceeded")
	}
	if tx.calls != 1 {
		t.Fatalf("business failure must not be retried, got %d attempts", tx.calls)
	}
}

func TestActionRequestForbidden(t *testing.T) {
	repo := newStubRepo()
	project := seedProject(repo, uuid.New(), 5, 1)
	request := seedPendingRequest(repo, project.ID, uuid.New())
	svc, _ := NewService(repo, &countingTxRunner{})

	_, err := svc.ActionRequest(context.Background(), ActionRequestInput{
		ProjectID:   project.ID,
		RequestID:   request.ID,
		ActorUserID: uuid.New(),
		Decision:    enums.RequestDecisionAccept,
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestActionRequestAlreadyDecided(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 1)
	request := seedPendingRequest(repo, project.ID, uuid.New())
	request.Status = enums.JoinRequestStatusRejected
	svc, _ := NewService(repo, &countingTxRunner{})

	_, err := svc.ActionRequest(context.Background(), ActionRequestInput{
		ProjectID:   project.ID,
		RequestID:   request.ID,
		ActorUserID: creatorID,
		Decision:    enums.RequestDecisionAccept,
	})
	assertCode(t, err, pkgerrors.CodeInvalidOperation)
}

func TestActionRequestRetriesInfraFailureOnce(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 1)
	request := seedPendingRequest(repo, project.ID, uuid.New())
	repo.incrementErr = errors.New("connection reset")
	repo.incrementErrOnce = true
	tx := &countingTxRunner{}
	svc, _ := NewService(repo, tx)

	_, err := svc.ActionRequest(context.Background(), ActionRequestInput{
		ProjectID:   project.ID,
		RequestID:   request.ID,
		ActorUserID: creatorID,
		Decision:    enums.RequestDecisionAccept,
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if tx.calls != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", tx.calls)
	}
}

func TestActionRequestInfraFailureSurfacesAfterRetry(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 1)
	request := seedPendingRequest(repo, project.ID, uuid.New())
	repo.incrementErr = errors.New("connection reset")
	tx := &countingTxRunner{}
	svc, _ := NewService(repo, tx)

	_, err := svc.ActionRequest(context.Background(), ActionRequestInput{
		ProjectID:   project.ID,
		RequestID:   request.ID,
		ActorUserID: creatorID,
		Decision:    enums.RequestDecisionAccept,
	})
	assertCode(t, err, pkgerrors.CodeDependency)
	if tx.calls != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", tx.calls)
	}
}

func TestLeave(t *testing.T) {
	repo := newStubRepo()
	project := seedProject(repo, uuid.New(), 5, 2)
	memberID := uuid.New()
	repo.memberships[pairKey(project.ID, memberID)] = &models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    memberID,
		Role:      enums.MemberRoleMember,
		Status:    enums.MembershipStatusAccepted,
	}
	svc, _ := NewService(repo, &countingTxRunner{})

	left, err := svc.Leave(context.Background(), project.ID, memberID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if left.CurrentMembers != 1 {
		t.Fatalf("expected member count 1 after leave, got %d", left.CurrentMembers)
	}
	if _, ok := repo.memberships[pairKey(project.ID, memberID)]; ok {
		t.Fatalf("membership row should be gone after leave")
	}
}

func TestLeaveCreator(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 1)
	svc, _ := NewService(repo, &countingTxRunner{})

	_, err := svc.Leave(context.Background(), project.ID, creatorID)
	assertCode(t, err, pkgerrors.CodeInvalidOperation)
}

func TestLeaveNotMember(t *testing.T) {
	repo := newStubRepo()
	project := seedProject(repo, uuid.New(), 5, 1)
	svc, _ := NewService(repo, &countingTxRunner{})

	_, err := svc.Leave(context.Background(), project.ID, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestCancelRequest(t *testing.T) {
	repo := newStubRepo()
	project := seedProject(repo, uuid.New(), 5, 1)
	requesterID := uuid.New()
	request := seedPendingRequest(repo, project.ID, requesterID)
	svc, _ := NewService(repo, &countingTxRunner{})

	if err := svc.CancelRequest(context.Background(), request.ID, requesterID); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if _, ok := repo.requests[request.ID]; ok {
		t.Fatalf("request row should be deleted")
	}
}

func TestCancelRequestForbidden(t *testing.T) {
	repo := newStubRepo()
	project := seedProject(repo, uuid.New(), 5, 1)
	request := seedPendingRequest(repo, project.ID, uuid.New())
	svc, _ := NewService(repo, &countingTxRunner{})

	err := svc.CancelRequest(context.Background(), request.ID, uuid.New())
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestCancelRequestNotFound(t *testing.T) {
	svc, _ := NewService(newStubRepo(), &countingTxRunner{})
	err := svc.CancelRequest(context.Background(), uuid.New(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetMembershipStatusCreator(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 1)
	svc, _ := NewService(repo, &countingTxRunner{})

	status, err := svc.GetMembershipStatus(context.Background(), project.ID, creatorID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !status.IsMember {
		t.Fatalf("creator counts as member")
	}
	if status.CanLeave {
		t.Fatalf("creator cannot leave")
	}
	if status.Role == nil || *status.Role != enums.MemberRoleCreator {
		t.Fatalf("expected creator role")
	}
}

func TestGetMembershipStatusPendingRequester(t *testing.T) {
	repo := newStubRepo()
	project := seedProject(repo, uuid.New(), 5, 1)
	requesterID := uuid.New()
	request := seedPendingRequest(repo, project.ID, requesterID)
	svc, _ := NewService(repo, &countingTxRunner{})

	status, err := svc.GetMembershipStatus(context.Background(), project.ID, requesterID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if status.IsMember {
		t.Fatalf("pending requester is not a member")
	}
	if status.PendingRequestID == nil || *status.PendingRequestID != request.ID {
		t.Fatalf("expected pending request id")
	}
}

func TestIsAcceptedMember(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	project := seedProject(repo, creatorID, 5, 2)
	memberID := uuid.New()
	repo.memberships[pairKey(project.ID, memberID)] = &models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    memberID,
		Role:      enums.MemberRoleMember,
		Status:    enums.MembershipStatusAccepted,
	}
	svc, _ := NewService(repo, &countingTxRunner{})

	for _, tc := range []struct {
		name   string
		userID uuid.UUID
		want   bool
	}{
		{"creator", creatorID, true},
		{"accepted member", memberID, true},
		{"stranger", uuid.New(), false},
	} {
		got, err := svc.IsAcceptedMember(context.Background(), project.ID, tc.userID)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}
