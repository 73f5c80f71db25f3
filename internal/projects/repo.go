package projects

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/enums"
	"github.com/synapsehq/synapse-backend/pkg/pagination"
)

// Repository defines read-side persistence for project browsing.
type Repository interface {
	ListProjects(ctx context.Context, input ListProjectsInput) (*ProjectList, error)
	FindProjectSummary(ctx context.Context, projectID, viewerID uuid.UUID) (*ProjectSummary, error)
	ListCreated(ctx context.Context, userID uuid.UUID) ([]ProjectSummary, error)
	ListJoined(ctx context.Context, userID uuid.UUID) ([]ProjectSummary, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a projects repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type projectSummaryRecord struct {
	ID               uuid.UUID
	CreatorID        uuid.UUID
	CreatorName      string
	Title            string
	Description      string
	RequiredSkills   pq.StringArray `gorm:"type:text[]"`
	Status           enums.ProjectStatus
	Visibility       enums.ProjectVisibility
	MaxMembers       int
	CurrentMembers   int
	CreatedAt        time.Time
	MembershipRole   *string
	MembershipStatus *string
	HasPending       bool
	WasRejected      bool
}

const summaryColumns = `p.id, p.creator_id, u.name AS creator_name, p.title, p.description,
p.required_skills, p.status, p.visibility, p.max_members, p.current_members, p.created_at`

func (r *repository) summaryQuery(ctx context.Context, viewerID uuid.UUID) *gorm.DB {
	pendingClause := "EXISTS (SELECT 1 FROM join_requests jr WHERE jr.project_id = p.id AND jr.requester_id = ? AND jr.status = 'pending')"
	rejectedClause := "EXISTS (SELECT 1 FROM join_requests jr WHERE jr.project_id = p.id AND jr.requester_id = ? AND jr.status = 'rejected')"

	return r.db.WithContext(ctx).
		Table("projects p").
		Select(summaryColumns+`,
m.role AS membership_role, m.status AS membership_status,
`+pendingClause+` AS has_pending,
`+rejectedClause+` AS was_rejected`, viewerID, viewerID).
		Joins("JOIN users u ON u.id = p.creator_id").
		Joins("LEFT JOIN project_memberships m ON m.project_id = p.id AND m.user_id = ?", viewerID)
}

func (r *repository) ListProjects(ctx context.Context, input ListProjectsInput) (*ProjectList, error) {
	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(input.Pagination.Limit)

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.summaryQuery(ctx, input.ViewerID).
		Where("p.visibility <> ? OR p.creator_id = ? OR m.status = ?",
			enums.ProjectVisibilityPrivate, input.ViewerID, enums.MembershipStatusAccepted)

	if input.Filters.Status != nil {
		qb = qb.Where("p.status = ?", *input.Filters.Status)
	}
	if search := strings.TrimSpace(input.Filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.title) LIKE ? OR LOWER(p.description) LIKE ?)", pattern, pattern)
	}

	if cursor != nil {
		qb = qb.Where("(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("p.created_at DESC").Order("p.id DESC").Limit(limitWithBuffer)

	var records []projectSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProjectSummary, 0, len(resultRows))
	for _, record := range resultRows {
		summaries = append(summaries, record.toSummary(input.ViewerID))
	}

	return &ProjectList{
		Projects:   summaries,
		NextCursor: nextCursor,
	}, nil
}

func (r *repository) FindProjectSummary(ctx context.Context, projectID, viewerID uuid.UUID) (*ProjectSummary, error) {
	var record projectSummaryRecord
	err := r.summaryQuery(ctx, viewerID).
		Where("p.id = ?", projectID).
		Scan(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	summary := record.toSummary(viewerID)
	return &summary, nil
}

func (r *repository) ListCreated(ctx context.Context, userID uuid.UUID) ([]ProjectSummary, error) {
	var records []projectSummaryRecord
	err := r.summaryQuery(ctx, userID).
		Where("p.creator_id = ?", userID).
		Order("p.created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return summariesFromRecords(records, userID), nil
}

func (r *repository) ListJoined(ctx context.Context, userID uuid.UUID) ([]ProjectSummary, error) {
	var records []projectSummaryRecord
	err := r.summaryQuery(ctx, userID).
		Where("m.user_id = ? AND m.status = ? AND m.role = ?", userID, enums.MembershipStatusAccepted, enums.MemberRoleMember).
		Order("p.created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return summariesFromRecords(records, userID), nil
}

func (record projectSummaryRecord) toSummary(viewerID uuid.UUID) ProjectSummary {
	return ProjectSummary{
		ID:             record.ID,
		CreatorID:      record.CreatorID,
		CreatorName:    record.CreatorName,
		Title:          record.Title,
		Description:    record.Description,
		RequiredSkills: record.RequiredSkills,
		Status:         record.Status,
		Visibility:     record.Visibility,
		MaxMembers:     record.MaxMembers,
		CurrentMembers: record.CurrentMembers,
		ViewerStatus:   record.viewerStatus(viewerID),
		CreatedAt:      record.CreatedAt,
	}
}

func (record projectSummaryRecord) viewerStatus(viewerID uuid.UUID) ViewerStatus {
	switch {
	case viewerID != uuid.Nil && record.CreatorID == viewerID:
		return ViewerStatusCreator
	case record.MembershipStatus != nil && *record.MembershipStatus == string(enums.MembershipStatusAccepted):
		return ViewerStatusMember
	case record.HasPending:
		return ViewerStatusPending
	case record.WasRejected:
		return ViewerStatusRejected
	default:
		return ViewerStatusNone
	}
}

func summariesFromRecords(records []projectSummaryRecord, viewerID uuid.UUID) []ProjectSummary {
	out := make([]ProjectSummary, 0, len(records))
	for _, record := range records {
		out = append(out, record.toSummary(viewerID))
	}
	return out
}
