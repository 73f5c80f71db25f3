package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

const maxProfileListEntries = 30

// Service exposes account reads and profile edits for the
// authenticated user.
type Service interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*Me, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Me, error)
}

type service struct {
	repo Repository
}

// NewService builds a users service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetMe(ctx context.Context, userID uuid.UUID) (*Me, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	return meFromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Me, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Skills) > maxProfileListEntries {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many skills")
	}
	if len(input.Interests) > maxProfileListEntries {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many interests")
	}

	if _, err := s.repo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	profile := &models.UserProfile{
		UserID:    input.UserID,
		Headline:  input.Headline,
		Bio:       input.Bio,
		Skills:    pq.StringArray(input.Skills),
		Interests: pq.StringArray(input.Interests),
		AvatarURL: input.AvatarURL,
	}
	if profile.Skills == nil {
		profile.Skills = pq.StringArray{}
	}
	if profile.Interests == nil {
		profile.Interests = pq.StringArray{}
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}

	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload user")
	}
	return meFromModel(user), nil
}

func meFromModel(user *models.User) *Me {
	me := &Me{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		me.Profile = &Profile{
			Headline:  user.Profile.Headline,
			Bio:       user.Profile.Bio,
			Skills:    user.Profile.Skills,
			Interests: user.Profile.Interests,
			AvatarURL: user.Profile.AvatarURL,
		}
	}
	return me
}
