package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectFile is file metadata shared inside a project; blobs live elsewhere.
type ProjectFile struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID  uuid.UUID `gorm:"column:project_id;type:uuid;not null;index"`
	UploaderID uuid.UUID `gorm:"column:uploader_id;type:uuid;not null"`
	Name       string    `gorm:"column:name;not null"`
	URL        string    `gorm:"column:url;not null"`
	SizeBytes  int64     `gorm:"column:size_bytes;not null;default:0"`
	MimeType   *string   `gorm:"column:mime_type"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
