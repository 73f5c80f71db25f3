package controllers

import (
	"net/http"
	"strings"

	"github.com/synapsehq/synapse-backend/api/middleware"
	"github.com/synapsehq/synapse-backend/api/responses"
	"github.com/synapsehq/synapse-backend/api/validators"
	"github.com/synapsehq/synapse-backend/internal/chat"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
	"github.com/synapsehq/synapse-backend/pkg/logger"
	"github.com/synapsehq/synapse-backend/pkg/pagination"
)

type postMessagePayload struct {
	Body string `json:"body" validate:"required,max=4000"`
}

// ChatList pages through a project room's history, newest first.
func ChatList(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListMessages(ctx, chat.ListMessagesInput{
			ProjectID: projectID,
			ViewerID:  middleware.UserUUIDFromContext(ctx),
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ChatPost persists a message and fans it out to the room.
func ChatPost(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload postMessagePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		message, err := svc.PostMessage(ctx, chat.PostMessageInput{
			ProjectID: projectID,
			SenderID:  middleware.UserUUIDFromContext(ctx),
			Body:      payload.Body,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, message)
	}
}
