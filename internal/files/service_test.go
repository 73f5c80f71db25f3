package files

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type stubFilesRepo struct {
	files map[uuid.UUID]*models.ProjectFile
}

func newStubFilesRepo() *stubFilesRepo {
	return &stubFilesRepo{files: map[uuid.UUID]*models.ProjectFile{}}
}

func (s *stubFilesRepo) CreateFile(_ context.Context, file *models.ProjectFile) (*models.ProjectFile, error) {
	s.files[file.ID] = file
	return file, nil
}

func (s *stubFilesRepo) FindFile(_ context.Context, fileID uuid.UUID) (*models.ProjectFile, error) {
	file, ok := s.files[fileID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return file, nil
}

func (s *stubFilesRepo) ListFiles(_ context.Context, projectID uuid.UUID) ([]File, error) {
	var out []File
	for _, file := range s.files {
		if file.ProjectID == projectID {
			out = append(out, File{ID: file.ID, ProjectID: file.ProjectID, Name: file.Name})
		}
	}
	return out, nil
}

func (s *stubFilesRepo) DeleteFile(_ context.Context, fileID uuid.UUID) error {
	delete(s.files, fileID)
	return nil
}

type stubFilesGate struct {
	accepted map[uuid.UUID]bool
	creators map[uuid.UUID]uuid.UUID
}

func (g *stubFilesGate) IsAcceptedMember(_ context.Context, projectID, _ uuid.UUID) (bool, error) {
	return g.accepted[projectID], nil
}

func (g *stubFilesGate) GetMembershipStatus(_ context.Context, projectID, userID uuid.UUID) (*memberships.MembershipStatus, error) {
	if g.creators[projectID] == userID {
		role := enums.MemberRoleCreator
		return &memberships.MembershipStatus{IsMember: true, Role: &role}, nil
	}
	role := enums.MemberRoleMember
	return &memberships.MembershipStatus{IsMember: true, Role: &role}, nil
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNilf(t, typed, "expected coded error %s, got %v", code, err)
	require.Equal(t, code, typed.Code())
}

func TestAddFileValidation(t *testing.T) {
	projectID := uuid.New()
	svc, err := NewService(newStubFilesRepo(), &stubFilesGate{accepted: map[uuid.UUID]bool{projectID: true}})
	require.NoError(t, err)

	_, err = svc.AddFile(context.Background(), AddFileInput{ProjectID: projectID, UploaderID: uuid.New(), URL: "https://cdn/x"})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddFile(context.Background(), AddFileInput{ProjectID: projectID, UploaderID: uuid.New(), Name: "notes.pdf"})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddFile(context.Background(), AddFileInput{
		ProjectID: projectID, UploaderID: uuid.New(), Name: "notes.pdf", URL: "https://cdn/x", SizeBytes: -1,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestAddFileMemberOnly(t *testing.T) {
	svc, err := NewService(newStubFilesRepo(), &stubFilesGate{accepted: map[uuid.UUID]bool{}})
	require.NoError(t, err)

	_, err = svc.AddFile(context.Background(), AddFileInput{
		ProjectID: uuid.New(), UploaderID: uuid.New(), Name: "notes.pdf", URL: "https://cdn/x",
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestRemoveFilePermissions(t *testing.T) {
	projectID := uuid.New()
	creatorID := uuid.New()
	uploaderID := uuid.New()
	strangerID := uuid.New()

	repo := newStubFilesRepo()
	gate := &stubFilesGate{
		accepted: map[uuid.UUID]bool{projectID: true},
		creators: map[uuid.UUID]uuid.UUID{projectID: creatorID},
	}
	svc, err := NewService(repo, gate)
	require.NoError(t, err)

	file, err := svc.AddFile(context.Background(), AddFileInput{
		ProjectID: projectID, UploaderID: uploaderID, Name: "notes.pdf", URL: "https://cdn/x", SizeBytes: 42,
	})
	require.NoError(t, err)

	err = svc.RemoveFile(context.Background(), file.ID, strangerID)
	assertCode(t, err, pkgerrors.CodeForbidden)

	// project creator may remove someone else's upload
	require.NoError(t, svc.RemoveFile(context.Background(), file.ID, creatorID))
	require.Empty(t, repo.files)
}

func TestRemoveFileByUploader(t *testing.T) {
	projectID := uuid.New()
	uploaderID := uuid.New()

	repo := newStubFilesRepo()
	gate := &stubFilesGate{accepted: map[uuid.UUID]bool{projectID: true}, creators: map[uuid.UUID]uuid.UUID{}}
	svc, err := NewService(repo, gate)
	require.NoError(t, err)

	file, err := svc.AddFile(context.Background(), AddFileInput{
		ProjectID: projectID, UploaderID: uploaderID, Name: "draft.md", URL: "https://cdn/y",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFile(context.Background(), file.ID, uploaderID))
}

func TestRemoveFileNotFound(t *testing.T) {
	svc, err := NewService(newStubFilesRepo(), &stubFilesGate{accepted: map[uuid.UUID]bool{}})
	require.NoError(t, err)

	err = svc.RemoveFile(context.Background(), uuid.New(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}
