package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserProfile carries the public-facing profile attached to a user.
type UserProfile struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Headline  *string        `gorm:"column:headline"`
	Bio       *string        `gorm:"column:bio"`
	Skills    pq.StringArray `gorm:"column:skills;type:text[];not null;default:'{}'"`
	Interests pq.StringArray `gorm:"column:interests;type:text[];not null;default:'{}'"`
	AvatarURL *string        `gorm:"column:avatar_url"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
