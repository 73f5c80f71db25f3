package files

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
)

// Repository persists file metadata records.
type Repository interface {
	CreateFile(ctx context.Context, file *models.ProjectFile) (*models.ProjectFile, error)
	FindFile(ctx context.Context, fileID uuid.UUID) (*models.ProjectFile, error)
	ListFiles(ctx context.Context, projectID uuid.UUID) ([]File, error)
	DeleteFile(ctx context.Context, fileID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a files repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type fileRow struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	UploaderID   uuid.UUID
	UploaderName string
	Name         string
	URL          string
	SizeBytes    int64
	MimeType     *string
	CreatedAt    time.Time
}

func (r *repository) CreateFile(ctx context.Context, file *models.ProjectFile) (*models.ProjectFile, error) {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (r *repository) FindFile(ctx context.Context, fileID uuid.UUID) (*models.ProjectFile, error) {
	var file models.ProjectFile
	err := r.db.WithContext(ctx).
		Where("id = ?", fileID).
		First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *repository) ListFiles(ctx context.Context, projectID uuid.UUID) ([]File, error) {
	var rows []fileRow
	err := r.db.WithContext(ctx).
		Table("project_files pf").
		Select(`pf.id, pf.project_id, pf.uploader_id, u.name AS uploader_name,
pf.name, pf.url, pf.size_bytes, pf.mime_type, pf.created_at`).
		Joins("JOIN users u ON u.id = pf.uploader_id").
		Where("pf.project_id = ?", projectID).
		Order("pf.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]File, 0, len(rows))
	for _, row := range rows {
		out = append(out, File{
			ID:           row.ID,
			ProjectID:    row.ProjectID,
			UploaderID:   row.UploaderID,
			UploaderName: row.UploaderName,
			Name:         row.Name,
			URL:          row.URL,
			SizeBytes:    row.SizeBytes,
			MimeType:     row.MimeType,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

func (r *repository) DeleteFile(ctx context.Context, fileID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", fileID).
		Delete(&models.ProjectFile{}).Error
}
