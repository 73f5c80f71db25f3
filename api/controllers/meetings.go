package controllers

import (
	"net/http"
	"time"

	"github.com/synapsehq/synapse-backend/api/middleware"
	"github.com/synapsehq/synapse-backend/api/responses"
	"github.com/synapsehq/synapse-backend/api/validators"
	"github.com/synapsehq/synapse-backend/internal/meetings"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
	"github.com/synapsehq/synapse-backend/pkg/logger"
)

type createMeetingPayload struct {
	Title    string     `json:"title" validate:"required,max=200"`
	Agenda   *string    `json:"agenda" validate:"omitempty,max=2000"`
	StartsAt *time.Time `json:"starts_at" validate:"required"`
	EndsAt   *time.Time `json:"ends_at" validate:"required"`
}

type updateMeetingPayload struct {
	Title    *string    `json:"title" validate:"omitempty,max=200"`
	Agenda   *string    `json:"agenda" validate:"omitempty,max=2000"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// MeetingList returns a project's scheduled meetings.
func MeetingList(svc meetings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "meetings service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListMeetings(ctx, projectID, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"meetings": list})
	}
}

// MeetingCreate schedules a meeting for a project.
func MeetingCreate(svc meetings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "meetings service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createMeetingPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := meetings.CreateMeetingInput{
			ProjectID:   projectID,
			OrganizerID: middleware.UserUUIDFromContext(ctx),
			Title:       payload.Title,
			Agenda:      payload.Agenda,
		}
		if payload.StartsAt != nil {
			input.StartsAt = *payload.StartsAt
		}
		if payload.EndsAt != nil {
			input.EndsAt = *payload.EndsAt
		}

		meeting, err := svc.CreateMeeting(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, meeting)
	}
}

// MeetingUpdate reschedules or retitles a meeting.
func MeetingUpdate(svc meetings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "meetings service unavailable"))
			return
		}

		meetingID, err := parseUUIDParam(r, "meetingId", "meeting id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateMeetingPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		meeting, err := svc.UpdateMeeting(ctx, meetings.UpdateMeetingInput{
			MeetingID:   meetingID,
			ActorUserID: middleware.UserUUIDFromContext(ctx),
			Title:       payload.Title,
			Agenda:      payload.Agenda,
			StartsAt:    payload.StartsAt,
			EndsAt:      payload.EndsAt,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, meeting)
	}
}

// MeetingCancel marks a scheduled meeting canceled.
func MeetingCancel(svc meetings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "meetings service unavailable"))
			return
		}

		meetingID, err := parseUUIDParam(r, "meetingId", "meeting id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.CancelMeeting(ctx, meetingID, middleware.UserUUIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"canceled": true})
	}
}
