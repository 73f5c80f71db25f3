package users

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the optional public-facing part of an account.
type Profile struct {
	Headline  *string  `json:"headline,omitempty"`
	Bio       *string  `json:"bio,omitempty"`
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
}

// UpdateProfileInput replaces the caller's profile wholesale; absent
// fields clear their columns, matching a full-form submit.
type UpdateProfileInput struct {
	UserID    uuid.UUID
	Headline  *string
	Bio       *string
	Skills    []string
	Interests []string
	AvatarURL *string
}

// Me is the authenticated user's own view of their account.
type Me struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Profile   *Profile  `json:"profile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
