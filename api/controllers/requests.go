package controllers

import (
	"net/http"

	"github.com/synapsehq/synapse-backend/api/middleware"
	"github.com/synapsehq/synapse-backend/api/responses"
	"github.com/synapsehq/synapse-backend/api/validators"
	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
	"github.com/synapsehq/synapse-backend/pkg/logger"
)

type joinRequestPayload struct {
	Message *string `json:"message" validate:"omitempty,max=1000"`
}

// RequestToJoin files a pending join request for the caller.
func RequestToJoin(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := joinRequestPayload{}
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		request, err := svc.RequestToJoin(ctx, memberships.RequestToJoinInput{
			ProjectID:   projectID,
			RequesterID: middleware.UserUUIDFromContext(ctx),
			Message:     payload.Message,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// RequestAccept approves a pending request, growing the roster.
func RequestAccept(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return actionRequest(svc, logg, enums.RequestDecisionAccept)
}

// RequestReject declines a pending request.
func RequestReject(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return actionRequest(svc, logg, enums.RequestDecisionReject)
}

func actionRequest(svc memberships.Service, logg *logger.Logger, decision enums.RequestDecision) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		requestID, err := parseUUIDParam(r, "requestId", "request id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		project, err := svc.ActionRequest(ctx, memberships.ActionRequestInput{
			ProjectID:   projectID,
			RequestID:   requestID,
			ActorUserID: middleware.UserUUIDFromContext(ctx),
			Decision:    decision,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, project)
	}
}

// RequestCancel withdraws the caller's own pending request.
func RequestCancel(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		requestID, err := parseUUIDParam(r, "requestId", "request id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.CancelRequest(ctx, requestID, middleware.UserUUIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"canceled": true})
	}
}

// RequestsSent lists the caller's join requests across projects.
func RequestsSent(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		sent, err := svc.ListSentRequests(ctx, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"requests": sent})
	}
}

// RequestsReceived lists pending requests across the caller's projects.
func RequestsReceived(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		received, err := svc.ListReceivedRequests(ctx, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"requests": received})
	}
}

// ProjectLeave removes the caller from a project's roster.
func ProjectLeave(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		project, err := svc.Leave(ctx, projectID, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, project)
	}
}
