package memberships

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// Repository defines persistence operations for projects, memberships, and
// join requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	FindProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)

	CreateMembership(ctx context.Context, membership *models.ProjectMembership) (*models.ProjectMembership, error)
	FindMembership(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMembership, error)
	UpsertAcceptedMembership(ctx context.Context, projectID, userID uuid.UUID) error
	DeleteAcceptedMembership(ctx context.Context, projectID, userID uuid.UUID) (int64, error)
	HasAcceptedMembership(ctx context.Context, projectID, userID uuid.UUID) (bool, error)

	CreateJoinRequest(ctx context.Context, request *models.JoinRequest) (*models.JoinRequest, error)
	FindJoinRequest(ctx context.Context, requestID uuid.UUID) (*models.JoinRequest, error)
	FindPendingRequest(ctx context.Context, projectID, userID uuid.UUID) (*models.JoinRequest, error)
	HasPendingRequest(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	MarkRequestDecided(ctx context.Context, requestID uuid.UUID, status enums.JoinRequestStatus, decidedBy uuid.UUID) (int64, error)
	DeleteJoinRequest(ctx context.Context, requestID uuid.UUID) (int64, error)

	IncrementMemberCount(ctx context.Context, projectID uuid.UUID) (int64, error)
	DecrementMemberCount(ctx context.Context, projectID uuid.UUID) (int64, error)

	ListSentRequests(ctx context.Context, userID uuid.UUID) ([]SentRequest, error)
	ListReceivedRequests(ctx context.Context, creatorID uuid.UUID) ([]ReceivedRequest, error)
	ListProjectMembers(ctx context.Context, projectID uuid.UUID) ([]ProjectMember, error)
}
