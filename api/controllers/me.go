package controllers

import (
	"net/http"

	"github.com/synapsehq/synapse-backend/api/middleware"
	"github.com/synapsehq/synapse-backend/api/responses"
	"github.com/synapsehq/synapse-backend/api/validators"
	"github.com/synapsehq/synapse-backend/internal/users"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
	"github.com/synapsehq/synapse-backend/pkg/logger"
)

type updateProfilePayload struct {
	Headline  *string  `json:"headline" validate:"omitempty,max=200"`
	Bio       *string  `json:"bio" validate:"omitempty,max=2000"`
	Skills    []string `json:"skills" validate:"max=30,dive,max=60"`
	Interests []string `json:"interests" validate:"max=30,dive,max=60"`
	AvatarURL *string  `json:"avatar_url" validate:"omitempty,url"`
}

// Me returns the authenticated user's account and profile.
func Me(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		me, err := svc.GetMe(ctx, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, me)
	}
}

// UpdateMe replaces the authenticated user's profile with the submitted
// form.
func UpdateMe(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var payload updateProfilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		me, err := svc.UpdateProfile(ctx, users.UpdateProfileInput{
			UserID:    middleware.UserUUIDFromContext(ctx),
			Headline:  payload.Headline,
			Bio:       payload.Bio,
			Skills:    payload.Skills,
			Interests: payload.Interests,
			AvatarURL: payload.AvatarURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, me)
	}
}
