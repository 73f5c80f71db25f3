package memberships

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

const defaultMaxMembers = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the membership lifecycle operations.
type Service interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error)
	RequestToJoin(ctx context.Context, input RequestToJoinInput) (*models.JoinRequest, error)
	ActionRequest(ctx context.Context, input ActionRequestInput) (*models.Project, error)
	Leave(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error)
	CancelRequest(ctx context.Context, requestID, userID uuid.UUID) error
	GetMembershipStatus(ctx context.Context, projectID, userID uuid.UUID) (*MembershipStatus, error)
	IsAcceptedMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	ListSentRequests(ctx context.Context, userID uuid.UUID) ([]SentRequest, error)
	ListReceivedRequests(ctx context.Context, creatorID uuid.UUID) ([]ReceivedRequest, error)
	ListProjectMembers(ctx context.Context, projectID uuid.UUID) ([]ProjectMember, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a membership service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("memberships repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if input.CreatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}
	if len(input.RequiredSkills) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one required skill")
	}
	if input.MaxMembers == 0 {
		input.MaxMembers = defaultMaxMembers
	}
	if input.MaxMembers < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max members must be at least 1")
	}
	if input.Visibility == "" {
		input.Visibility = enums.ProjectVisibilityPublic
	}
	if !input.Visibility.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid visibility")
	}

	var created *models.Project
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		project := &models.Project{
			ID:             uuid.New(),
			CreatorID:      input.CreatorID,
			Title:          strings.TrimSpace(input.Title),
			Description:    strings.TrimSpace(input.Description),
			RequiredSkills: input.RequiredSkills,
			Status:         enums.ProjectStatusOpen,
			Visibility:     input.Visibility,
			MaxMembers:     input.MaxMembers,
			CurrentMembers: 1,
		}
		project, err := repo.CreateProject(ctx, project)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create project")
		}

		membership := &models.ProjectMembership{
			ID:        uuid.New(),
			ProjectID: project.ID,
			UserID:    input.CreatorID,
			Role:      enums.MemberRoleCreator,
			Status:    enums.MembershipStatusAccepted,
		}
		if _, err := repo.CreateMembership(ctx, membership); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create creator membership")
		}

		created = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) RequestToJoin(ctx context.Context, input RequestToJoinInput) (*models.JoinRequest, error) {
	if input.ProjectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	if input.RequesterID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var created *models.JoinRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		project, err := repo.FindProject(ctx, input.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
		}
		if project.CreatorID == input.RequesterID {
			return pkgerrors.New(pkgerrors.CodeInvalidOperation, "cannot request to join your own project")
		}

		isMember, err := repo.HasAcceptedMembership(ctx, input.ProjectID, input.RequesterID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
		}
		if isMember {
			return pkgerrors.New(pkgerrors.CodeConflict, "already a member of this project")
		}

		hasPending, err := repo.HasPendingRequest(ctx, input.ProjectID, input.RequesterID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check pending request")
		}
		if hasPending {
			return pkgerrors.New(pkgerrors.CodeConflict, "join request already pending")
		}

		request := &models.JoinRequest{
			ID:          uuid.New(),
			ProjectID:   input.ProjectID,
			RequesterID: input.RequesterID,
			Status:      enums.JoinRequestStatusPending,
			Message:     input.Message,
		}
		request, err = repo.CreateJoinRequest(ctx, request)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create join request")
		}

		created = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ActionRequest applies the creator's accept/reject decision. The whole
// decision runs in one transaction; an infrastructure failure is retried once,
// business failures are surfaced as-is.
func (s *service) ActionRequest(ctx context.Context, input ActionRequestInput) (*models.Project, error) {
	if input.ProjectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.Decision.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be accept or reject")
	}

	project, err := s.actionRequestOnce(ctx, input)
	if err != nil && !pkgerrors.IsBusiness(err) {
		return s.actionRequestOnce(ctx, input)
	}
	return project, err
}

func (s *service) actionRequestOnce(ctx context.Context, input ActionRequestInput) (*models.Project, error) {
	var decided *models.Project
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		request, err := repo.FindJoinRequest(ctx, input.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "join request not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load join request")
		}
		if request.ProjectID != input.ProjectID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "join request not found")
		}

		project, err := repo.FindProject(ctx, request.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
		}
		if project.CreatorID != input.ActorUserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the project creator can action requests")
		}
		if request.Status != enums.JoinRequestStatusPending {
			return pkgerrors.New(pkgerrors.CodeInvalidOperation, "join request already decided")
		}

		if input.Decision == enums.RequestDecisionAccept {
			rows, err := repo.IncrementMemberCount(ctx, project.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment member count")
			}
			if rows == 0 {
				return pkgerrors.New(pkgerrors.CodeCapacityExceeded, "project is full")
			}

			rows, err = repo.MarkRequestDecided(ctx, request.ID, enums.JoinRequestStatusAccepted, input.ActorUserID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "accept join request")
			}
			if rows == 0 {
				return pkgerrors.New(pkgerrors.CodeInvalidOperation, "join request already decided")
			}

			if err := repo.UpsertAcceptedMembership(ctx, project.ID, request.RequesterID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert membership")
			}
			project.CurrentMembers++
		} else {
			rows, err := repo.MarkRequestDecided(ctx, request.ID, enums.JoinRequestStatusRejected, input.ActorUserID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject join request")
			}
			if rows == 0 {
				return pkgerrors.New(pkgerrors.CodeInvalidOperation, "join request already decided")
			}
		}

		decided = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

func (s *service) Leave(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var left *models.Project
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		project, err := repo.FindProject(ctx, projectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
		}
		if project.CreatorID == userID {
			return pkgerrors.New(pkgerrors.CodeInvalidOperation, "creator cannot leave their own project")
		}

		rows, err := repo.DeleteAcceptedMembership(ctx, projectID, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete membership")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "not a member of this project")
		}

		if _, err := repo.DecrementMemberCount(ctx, projectID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement member count")
		}
		if project.CurrentMembers > 1 {
			project.CurrentMembers--
		}

		left = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return left, nil
}

func (s *service) CancelRequest(ctx context.Context, requestID, userID uuid.UUID) error {
	if requestID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	request, err := s.repo.FindJoinRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "join request not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load join request")
	}
	if request.RequesterID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot cancel another user's request")
	}

	rows, err := s.repo.DeleteJoinRequest(ctx, requestID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete join request")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "join request not found")
	}
	return nil
}

func (s *service) GetMembershipStatus(ctx context.Context, projectID, userID uuid.UUID) (*MembershipStatus, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	project, err := s.repo.FindProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}

	if project.CreatorID == userID {
		role := enums.MemberRoleCreator
		status := enums.MembershipStatusAccepted
		return &MembershipStatus{
			IsMember: true,
			Role:     &role,
			Status:   &status,
			CanLeave: false,
		}, nil
	}

	out := &MembershipStatus{}
	membership, err := s.repo.FindMembership(ctx, projectID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	if membership != nil {
		role := membership.Role
		status := membership.Status
		out.Role = &role
		out.Status = &status
		out.IsMember = membership.Status == enums.MembershipStatusAccepted
		out.CanLeave = out.IsMember
	}

	pending, err := s.pendingRequestID(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	out.PendingRequestID = pending

	return out, nil
}

func (s *service) pendingRequestID(ctx context.Context, projectID, userID uuid.UUID) (*uuid.UUID, error) {
	request, err := s.repo.FindPendingRequest(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find pending request")
	}
	id := request.ID
	return &id, nil
}

// IsAcceptedMember is the sole gate used by the collaboration modules. The
// creator always passes without a membership row lookup.
func (s *service) IsAcceptedMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	if projectID == uuid.Nil || userID == uuid.Nil {
		return false, nil
	}

	project, err := s.repo.FindProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project")
	}
	if project.CreatorID == userID {
		return true, nil
	}

	accepted, err := s.repo.HasAcceptedMembership(ctx, projectID, userID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership")
	}
	return accepted, nil
}

func (s *service) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]SentRequest, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	requests, err := s.repo.ListSentRequests(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sent requests")
	}
	return requests, nil
}

func (s *service) ListReceivedRequests(ctx context.Context, creatorID uuid.UUID) ([]ReceivedRequest, error) {
	if creatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	requests, err := s.repo.ListReceivedRequests(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list received requests")
	}
	return requests, nil
}

func (s *service) ListProjectMembers(ctx context.Context, projectID uuid.UUID) ([]ProjectMember, error) {
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	members, err := s.repo.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list project members")
	}
	return members, nil
}
