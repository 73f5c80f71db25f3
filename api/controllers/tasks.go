package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/api/middleware"
	"github.com/synapsehq/synapse-backend/api/responses"
	"github.com/synapsehq/synapse-backend/api/validators"
	"github.com/synapsehq/synapse-backend/internal/tasks"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
	"github.com/synapsehq/synapse-backend/pkg/logger"
)

type createTaskPayload struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	AssigneeID  *string    `json:"assignee_id" validate:"omitempty,uuid"`
	DueAt       *time.Time `json:"due_at"`
}

type updateTaskStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

// TaskList returns a project's board, newest first.
func TaskList(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tasks service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListTasks(ctx, projectID, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"tasks": list})
	}
}

// TaskCreate adds a board item, optionally assigned to a member.
func TaskCreate(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tasks service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createTaskPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var assigneeID *uuid.UUID
		if payload.AssigneeID != nil {
			id, parseErr := uuid.Parse(*payload.AssigneeID)
			if parseErr != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid assignee id"))
				return
			}
			assigneeID = &id
		}

		task, err := svc.CreateTask(ctx, tasks.CreateTaskInput{
			ProjectID:   projectID,
			CreatorID:   middleware.UserUUIDFromContext(ctx),
			AssigneeID:  assigneeID,
			Title:       payload.Title,
			Description: payload.Description,
			DueAt:       payload.DueAt,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, task)
	}
}

// TaskUpdateStatus moves a task across the board.
func TaskUpdateStatus(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tasks service unavailable"))
			return
		}

		taskID, err := parseUUIDParam(r, "taskId", "task id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateTaskStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		task, err := svc.UpdateTaskStatus(ctx, tasks.UpdateTaskStatusInput{
			TaskID:      taskID,
			ActorUserID: middleware.UserUUIDFromContext(ctx),
			Status:      enums.TaskStatus(payload.Status),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, task)
	}
}

// TaskDelete removes a board item; creator or assignee only.
func TaskDelete(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tasks service unavailable"))
			return
		}

		taskID, err := parseUUIDParam(r, "taskId", "task id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteTask(ctx, taskID, middleware.UserUUIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
