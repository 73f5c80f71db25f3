package files

import (
	"time"

	"github.com/google/uuid"
)

// File is shared file metadata; the bytes live in external storage.
type File struct {
	ID           uuid.UUID `json:"id"`
	ProjectID    uuid.UUID `json:"project_id"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	UploaderName string    `json:"uploader_name"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     *string   `json:"mime_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AddFileInput registers an uploaded file with a project.
type AddFileInput struct {
	ProjectID  uuid.UUID
	UploaderID uuid.UUID
	Name       string
	URL        string
	SizeBytes  int64
	MimeType   *string
}
