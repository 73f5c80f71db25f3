package files

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type membershipGate interface {
	IsAcceptedMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	GetMembershipStatus(ctx context.Context, projectID, userID uuid.UUID) (*memberships.MembershipStatus, error)
}

// Service exposes project file metadata operations.
type Service interface {
	ListFiles(ctx context.Context, projectID, viewerID uuid.UUID) ([]File, error)
	AddFile(ctx context.Context, input AddFileInput) (*models.ProjectFile, error)
	RemoveFile(ctx context.Context, fileID, userID uuid.UUID) error
}

type service struct {
	repo Repository
	gate membershipGate
}

// NewService builds a files service with the required dependencies.
func NewService(repo Repository, gate membershipGate) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("files repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("membership gate required")
	}
	return &service{repo: repo, gate: gate}, nil
}

func (s *service) ListFiles(ctx context.Context, projectID, viewerID uuid.UUID) ([]File, error) {
	if err := requireMember(ctx, s.gate, projectID, viewerID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListFiles(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list files")
	}
	return list, nil
}

func (s *service) AddFile(ctx context.Context, input AddFileInput) (*models.ProjectFile, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name required")
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file url required")
	}
	if input.SizeBytes < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file size cannot be negative")
	}
	if err := requireMember(ctx, s.gate, input.ProjectID, input.UploaderID); err != nil {
		return nil, err
	}

	file, err := s.repo.CreateFile(ctx, &models.ProjectFile{
		ID:         uuid.New(),
		ProjectID:  input.ProjectID,
		UploaderID: input.UploaderID,
		Name:       strings.TrimSpace(input.Name),
		URL:        strings.TrimSpace(input.URL),
		SizeBytes:  input.SizeBytes,
		MimeType:   input.MimeType,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist file record")
	}
	return file, nil
}

// RemoveFile deletes the metadata record. Allowed for the uploader and the
// project creator.
func (s *service) RemoveFile(ctx context.Context, fileID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	file, err := s.repo.FindFile(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load file")
	}

	if file.UploaderID != userID {
		isCreator, err := isProjectCreator(ctx, s.gate, file.ProjectID, userID)
		if err != nil {
			return err
		}
		if !isCreator {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the uploader or project creator can remove files")
		}
	}

	if err := s.repo.DeleteFile(ctx, fileID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete file record")
	}
	return nil
}

func requireMember(ctx context.Context, gate membershipGate, projectID, userID uuid.UUID) error {
	if projectID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	isMember, err := gate.IsAcceptedMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return pkgerrors.New(pkgerrors.CodeForbidden, "project files are member-only")
	}
	return nil
}

func isProjectCreator(ctx context.Context, gate membershipGate, projectID, userID uuid.UUID) (bool, error) {
	status, err := gate.GetMembershipStatus(ctx, projectID, userID)
	if err != nil {
		return false, err
	}
	return status.Role != nil && *status.Role == enums.MemberRoleCreator, nil
}
