package memberships

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a memberships repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func (r *repository) FindProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("id = ?", projectID).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *repository) CreateMembership(ctx context.Context, membership *models.ProjectMembership) (*models.ProjectMembership, error) {
	if !membership.Role.IsValid() {
		return nil, fmt.Errorf("invalid member role %q", membership.Role)
	}
	if !membership.Status.IsValid() {
		return nil, fmt.Errorf("invalid membership status %q", membership.Status)
	}
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

func (r *repository) FindMembership(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMembership, error) {
	var membership models.ProjectMembership
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// UpsertAcceptedMembership inserts or revives the (project, user) membership
// row as an accepted member. Re-accepting after a rejection reuses the row.
func (r *repository) UpsertAcceptedMembership(ctx context.Context, projectID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO project_memberships (id, project_id, user_id, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (project_id, user_id)
		DO UPDATE SET role = excluded.role, status = excluded.status, updated_at = CURRENT_TIMESTAMP
	`, uuid.New(), projectID, userID, enums.MemberRoleMember, enums.MembershipStatusAccepted).Error
}

func (r *repository) DeleteAcceptedMembership(ctx context.Context, projectID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ? AND status = ?", projectID, userID, enums.MembershipStatusAccepted).
		Delete(&models.ProjectMembership{})
	return res.RowsAffected, res.Error
}

func (r *repository) HasAcceptedMembership(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ? AND status = ?", projectID, userID, enums.MembershipStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateJoinRequest(ctx context.Context, request *models.JoinRequest) (*models.JoinRequest, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (r *repository) FindJoinRequest(ctx context.Context, requestID uuid.UUID) (*models.JoinRequest, error) {
	var request models.JoinRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", requestID).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) FindPendingRequest(ctx context.Context, projectID, userID uuid.UUID) (*models.JoinRequest, error) {
	var request models.JoinRequest
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND requester_id = ? AND status = ?", projectID, userID, enums.JoinRequestStatusPending).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) HasPendingRequest(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JoinRequest{}).
		Where("project_id = ? AND requester_id = ? AND status = ?", projectID, userID, enums.JoinRequestStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkRequestDecided flips a request out of pending. The status guard makes
// the flip race-safe: a request decided twice reports zero rows the second
// time.
func (r *repository) MarkRequestDecided(ctx context.Context, requestID uuid.UUID, status enums.JoinRequestStatus, decidedBy uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE join_requests
		SET status = ?,
			decided_by_user_id = ?,
			decided_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`, status, decidedBy, requestID, enums.JoinRequestStatusPending)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteJoinRequest(ctx context.Context, requestID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", requestID).
		Delete(&models.JoinRequest{})
	return res.RowsAffected, res.Error
}

// IncrementMemberCount bumps the member counter only while capacity remains.
// Zero affected rows means the project is full.
func (r *repository) IncrementMemberCount(ctx context.Context, projectID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE projects
		SET current_members = current_members + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND current_members < max_members
	`, projectID)
	return res.RowsAffected, res.Error
}

// DecrementMemberCount lowers the member counter, flooring it at the creator's
// seat.
func (r *repository) DecrementMemberCount(ctx context.Context, projectID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE projects
		SET current_members = current_members - 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND current_members > 1
	`, projectID)
	return res.RowsAffected, res.Error
}

func (r *repository) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]SentRequest, error) {
	var rows []sentRequestRow
	err := r.db.WithContext(ctx).
		Model(&models.JoinRequest{}).
		Select("join_requests.*, projects.title AS project_title").
		Joins("JOIN projects ON projects.id = join_requests.project_id").
		Where("join_requests.requester_id = ?", userID).
		Order("join_requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return sentRequestsFromRows(rows), nil
}

func (r *repository) ListReceivedRequests(ctx context.Context, creatorID uuid.UUID) ([]ReceivedRequest, error) {
	var rows []receivedRequestRow
	err := r.db.WithContext(ctx).
		Model(&models.JoinRequest{}).
		Select("join_requests.*, projects.title AS project_title, users.name AS requester_name, users.email AS requester_email").
		Joins("JOIN projects ON projects.id = join_requests.project_id").
		Joins("JOIN users ON users.id = join_requests.requester_id").
		Where("projects.creator_id = ?", creatorID).
		Order("join_requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return receivedRequestsFromRows(rows), nil
}

func (r *repository) ListProjectMembers(ctx context.Context, projectID uuid.UUID) ([]ProjectMember, error) {
	var rows []projectMemberRow
	err := r.db.WithContext(ctx).
		Model(&models.ProjectMembership{}).
		Select("project_memberships.*, users.name, users.email").
		Joins("JOIN users ON users.id = project_memberships.user_id").
		Where("project_memberships.project_id = ? AND project_memberships.status = ?", projectID, enums.MembershipStatusAccepted).
		Order("project_memberships.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return projectMembersFromRows(rows), nil
}
