package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type stubUsersRepo struct {
	users     map[uuid.UUID]*models.User
	upsertErr error
}

func (s *stubUsersRepo) FindByID(_ context.Context, userID uuid.UUID) (*models.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUsersRepo) UpsertProfile(_ context.Context, profile *models.UserProfile) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	user, ok := s.users[profile.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if user.Profile == nil {
		user.Profile = &models.UserProfile{UserID: profile.UserID}
	}
	user.Profile.Headline = profile.Headline
	user.Profile.Bio = profile.Bio
	user.Profile.Skills = profile.Skills
	user.Profile.Interests = profile.Interests
	user.Profile.AvatarURL = profile.AvatarURL
	return nil
}

func TestGetMe(t *testing.T) {
	userID := uuid.New()
	headline := "CS undergrad"
	repo := &stubUsersRepo{users: map[uuid.UUID]*models.User{
		userID: {
			ID:    userID,
			Email: "ada@example.edu",
			Name:  "ada",
			Profile: &models.UserProfile{
				UserID:   userID,
				Headline: &headline,
				Skills:   []string{"go", "sql"},
			},
		},
	}}

	svc, err := NewService(repo)
	require.NoError(t, err)

	me, err := svc.GetMe(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, "ada@example.edu", me.Email)
	require.NotNil(t, me.Profile)
	require.Equal(t, []string{"go", "sql"}, me.Profile.Skills)
}

func TestGetMeWithoutProfile(t *testing.T) {
	userID := uuid.New()
	repo := &stubUsersRepo{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "bea@example.edu", Name: "bea"},
	}}

	svc, err := NewService(repo)
	require.NoError(t, err)

	me, err := svc.GetMe(context.Background(), userID)
	require.NoError(t, err)
	require.Nil(t, me.Profile)
}

func TestGetMeUnknownUser(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{users: map[uuid.UUID]*models.User{}})
	require.NoError(t, err)

	_, err = svc.GetMe(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateProfileCreatesWhenMissing(t *testing.T) {
	userID := uuid.New()
	repo := &stubUsersRepo{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "cam@example.edu", Name: "cam"},
	}}

	svc, err := NewService(repo)
	require.NoError(t, err)

	bio := "builds campus tools"
	me, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: userID,
		Bio:    &bio,
		Skills: []string{"go", "postgres"},
	})
	require.NoError(t, err)
	require.NotNil(t, me.Profile)
	require.Equal(t, &bio, me.Profile.Bio)
	require.Equal(t, []string{"go", "postgres"}, me.Profile.Skills)
}

func TestUpdateProfileReplacesExisting(t *testing.T) {
	userID := uuid.New()
	oldHeadline := "old headline"
	repo := &stubUsersRepo{users: map[uuid.UUID]*models.User{
		userID: {
			ID:    userID,
			Email: "dee@example.edu",
			Name:  "dee",
			Profile: &models.UserProfile{
				UserID:   userID,
				Headline: &oldHeadline,
				Skills:   []string{"java"},
			},
		},
	}}

	svc, err := NewService(repo)
	require.NoError(t, err)

	me, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: userID,
		Skills: []string{"go"},
	})
	require.NoError(t, err)
	require.NotNil(t, me.Profile)
	require.Nil(t, me.Profile.Headline)
	require.Equal(t, []string{"go"}, me.Profile.Skills)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{users: map[uuid.UUID]*models.User{}})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: uuid.New()})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateProfileRequiresIdentity(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{users: map[uuid.UUID]*models.User{}})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), UpdateProfileInput{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestGetMeRequiresIdentity(t *testing.T) {
	svc, err := NewService(&stubUsersRepo{users: map[uuid.UUID]*models.User{}})
	require.NoError(t, err)

	_, err = svc.GetMe(context.Background(), uuid.Nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}
