package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
)

// Repository loads and updates account records.
type Repository interface {
	FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpsertProfile(ctx context.Context, profile *models.UserProfile) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a users repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertProfile(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO user_profiles (id, user_id, headline, bio, skills, interests, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id)
		DO UPDATE SET headline = excluded.headline, bio = excluded.bio, skills = excluded.skills,
			interests = excluded.interests, avatar_url = excluded.avatar_url, updated_at = CURRENT_TIMESTAMP
	`, uuid.New(), profile.UserID, profile.Headline, profile.Bio, profile.Skills, profile.Interests, profile.AvatarURL).Error
}

func (r *repository) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
