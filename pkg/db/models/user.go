package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record; authentication is handled upstream.
type User struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string       `gorm:"column:email;not null;uniqueIndex"`
	Name      string       `gorm:"column:name;not null"`
	Profile   *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
