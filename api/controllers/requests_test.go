package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/api/middleware"
	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type stubMembershipService struct {
	project     *models.Project
	request     *models.JoinRequest
	err         error
	lastAction  memberships.ActionRequestInput
	lastRequest memberships.RequestToJoinInput
}

func (s *stubMembershipService) CreateProject(ctx context.Context, input memberships.CreateProjectInput) (*models.Project, error) {
	return s.project, s.err
}

func (s *stubMembershipService) RequestToJoin(ctx context.Context, input memberships.RequestToJoinInput) (*models.JoinRequest, error) {
	s.lastRequest = input
	return s.request, s.err
}

func (s *stubMembershipService) ActionRequest(ctx context.Context, input memberships.ActionRequestInput) (*models.Project, error) {
	s.lastAction = input
	return s.project, s.err
}

func (s *stubMembershipService) Leave(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	return s.project, s.err
}

func (s *stubMembershipService) CancelRequest(ctx context.Context, requestID, userID uuid.UUID) error {
	return s.err
}

func (s *stubMembershipService) GetMembershipStatus(ctx context.Context, projectID, userID uuid.UUID) (*memberships.MembershipStatus, error) {
	return nil, s.err
}

func (s *stubMembershipService) IsAcceptedMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	return false, s.err
}

func (s *stubMembershipService) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]memberships.SentRequest, error) {
	return nil, s.err
}

func (s *stubMembershipService) ListReceivedRequests(ctx context.Context, creatorID uuid.UUID) ([]memberships.ReceivedRequest, error) {
	return nil, s.err
}

func (s *stubMembershipService) ListProjectMembers(ctx context.Context, projectID uuid.UUID) ([]memberships.ProjectMember, error) {
	return nil, s.err
}

func routeRequest(handler http.HandlerFunc, method, pattern, target string, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRequestAcceptPassesDecision(t *testing.T) {
	projectID := uuid.New()
	requestID := uuid.New()
	actorID := uuid.New()
	svc := &stubMembershipService{project: &models.Project{ID: projectID, CurrentMembers: 2}}

	resp := routeRequest(
		RequestAccept(svc, nil),
		http.MethodPost,
		"/api/v1/projects/{projectId}/requests/{requestId}/accept",
		"/api/v1/projects/"+projectID.String()+"/requests/"+requestID.String()+"/accept",
		actorID,
		"",
	)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastAction.Decision != enums.RequestDecisionAccept {
		t.Fatalf("unexpected decision: %s", svc.lastAction.Decision)
	}
	if svc.lastAction.ProjectID != projectID || svc.lastAction.RequestID != requestID {
		t.Fatalf("ids not forwarded")
	}
	if svc.lastAction.ActorUserID != actorID {
		t.Fatalf("actor not taken from context")
	}
}

func TestRequestRejectPassesDecision(t *testing.T) {
	projectID := uuid.New()
	requestID := uuid.New()
	svc := &stubMembershipService{project: &models.Project{ID: projectID}}

	resp := routeRequest(
		RequestReject(svc, nil),
		http.MethodPost,
		"/api/v1/projects/{projectId}/requests/{requestId}/reject",
		"/api/v1/projects/"+projectID.String()+"/requests/"+requestID.String()+"/reject",
		uuid.New(),
		"",
	)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastAction.Decision != enums.RequestDecisionReject {
		t.Fatalf("unexpected decision: %s", svc.lastAction.Decision)
	}
}

func TestRequestAcceptInvalidRequestID(t *testing.T) {
	projectID := uuid.New()
	svc := &stubMembershipService{}

	resp := routeRequest(
		RequestAccept(svc, nil),
		http.MethodPost,
		"/api/v1/projects/{projectId}/requests/{requestId}/accept",
		"/api/v1/projects/"+projectID.String()+"/requests/not-a-uuid/accept",
		uuid.New(),
		"",
	)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRequestToJoinCreated(t *testing.T) {
	projectID := uuid.New()
	requesterID := uuid.New()
	svc := &stubMembershipService{request: &models.JoinRequest{ID: uuid.New(), ProjectID: projectID}}

	resp := routeRequest(
		RequestToJoin(svc, nil),
		http.MethodPost,
		"/api/v1/projects/{projectId}/requests",
		"/api/v1/projects/"+projectID.String()+"/requests",
		requesterID,
		`{"message":"I know React"}`,
	)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastRequest.RequesterID != requesterID {
		t.Fatalf("requester not taken from context")
	}
	if svc.lastRequest.Message == nil || *svc.lastRequest.Message != "I know React" {
		t.Fatalf("message not forwarded")
	}

	var envelope struct {
		Data models.JoinRequest `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ProjectID != projectID {
		t.Fatalf("unexpected project id: %s", envelope.Data.ProjectID)
	}
}

func TestRequestCancelPropagatesBusinessError(t *testing.T) {
	svc := &stubMembershipService{err: pkgerrors.New(pkgerrors.CodeForbidden, "not your request")}

	resp := routeRequest(
		RequestCancel(svc, nil),
		http.MethodDelete,
		"/api/v1/requests/{requestId}",
		"/api/v1/requests/"+uuid.NewString(),
		uuid.New(),
		"",
	)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}
