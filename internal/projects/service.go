package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/internal/memberships"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type membershipGate interface {
	IsAcceptedMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	ListProjectMembers(ctx context.Context, projectID uuid.UUID) ([]memberships.ProjectMember, error)
}

// Service exposes the read-side project browsing operations. Mutations of
// membership state live in the memberships service.
type Service interface {
	List(ctx context.Context, input ListProjectsInput) (*ProjectList, error)
	Search(ctx context.Context, viewerID uuid.UUID, query string) (*ProjectList, error)
	GetDetail(ctx context.Context, projectID, viewerID uuid.UUID) (*ProjectDetail, error)
	ListMine(ctx context.Context, userID uuid.UUID) (*MyProjects, error)
}

type service struct {
	repo Repository
	gate membershipGate
}

// NewService builds a projects service with the required dependencies.
func NewService(repo Repository, gate membershipGate) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("projects repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("membership gate required")
	}
	return &service{repo: repo, gate: gate}, nil
}

func (s *service) List(ctx context.Context, input ListProjectsInput) (*ProjectList, error) {
	list, err := s.repo.ListProjects(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list projects")
	}
	return list, nil
}

func (s *service) Search(ctx context.Context, viewerID uuid.UUID, query string) (*ProjectList, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query required")
	}
	return s.List(ctx, ListProjectsInput{
		ViewerID: viewerID,
		Filters:  ProjectListFilters{Query: query},
	})
}

func (s *service) GetDetail(ctx context.Context, projectID, viewerID uuid.UUID) (*ProjectDetail, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}

	isMember, err := s.gate.IsAcceptedMember(ctx, projectID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "project details are member-only")
	}

	summary, err := s.repo.FindProjectSummary(ctx, projectID, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}

	members, err := s.gate.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{
		Project: *summary,
		Members: members,
	}, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) (*MyProjects, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	created, err := s.repo.ListCreated(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list created projects")
	}
	joined, err := s.repo.ListJoined(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list joined projects")
	}

	return &MyProjects{Created: created, Joined: joined}, nil
}
