package meetings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// Repository persists project meetings.
type Repository interface {
	CreateMeeting(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error)
	FindMeeting(ctx context.Context, meetingID uuid.UUID) (*models.Meeting, error)
	ListMeetings(ctx context.Context, projectID uuid.UUID) ([]Meeting, error)
	SaveMeeting(ctx context.Context, meeting *models.Meeting) error
	MarkCanceled(ctx context.Context, meetingID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a meetings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type meetingRow struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	OrganizerID   uuid.UUID
	OrganizerName string
	Title         string
	Agenda        *string
	Status        enums.MeetingStatus
	StartsAt      time.Time
	EndsAt        time.Time
	CreatedAt     time.Time
}

func (r *repository) CreateMeeting(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error) {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}

func (r *repository) FindMeeting(ctx context.Context, meetingID uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ?", meetingID).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *repository) ListMeetings(ctx context.Context, projectID uuid.UUID) ([]Meeting, error) {
	var rows []meetingRow
	err := r.db.WithContext(ctx).
		Table("meetings mt").
		Select(`mt.id, mt.project_id, mt.organizer_id, u.name AS organizer_name,
mt.title, mt.agenda, mt.status, mt.starts_at, mt.ends_at, mt.created_at`).
		Joins("JOIN users u ON u.id = mt.organizer_id").
		Where("mt.project_id = ?", projectID).
		Order("mt.starts_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]Meeting, 0, len(rows))
	for _, row := range rows {
		out = append(out, Meeting{
			ID:            row.ID,
			ProjectID:     row.ProjectID,
			OrganizerID:   row.OrganizerID,
			OrganizerName: row.OrganizerName,
			Title:         row.Title,
			Agenda:        row.Agenda,
			Status:        row.Status,
			StartsAt:      row.StartsAt,
			EndsAt:        row.EndsAt,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}

func (r *repository) SaveMeeting(ctx context.Context, meeting *models.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// MarkCanceled flips a scheduled meeting to canceled. Already-canceled
// meetings are left alone and report zero rows.
func (r *repository) MarkCanceled(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("id = ? AND status = ?", meetingID, enums.MeetingStatusScheduled).
		Update("status", enums.MeetingStatusCanceled)
	return result.RowsAffected, result.Error
}
