package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/api/middleware"
	"github.com/synapsehq/synapse-backend/api/responses"
	"github.com/synapsehq/synapse-backend/api/validators"
	"github.com/synapsehq/synapse-backend/internal/memberships"
	"github.com/synapsehq/synapse-backend/internal/projects"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
	"github.com/synapsehq/synapse-backend/pkg/logger"
	"github.com/synapsehq/synapse-backend/pkg/pagination"
)

type createProjectPayload struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"required"`
	RequiredSkills []string `json:"required_skills" validate:"required,min=1,max=20"`
	MaxMembers     int      `json:"max_members" validate:"omitempty,min=1,max=50"`
	Visibility     string   `json:"visibility" validate:"omitempty,oneof=public private"`
}

// ProjectCreate opens a new project with the caller as its creator.
func ProjectCreate(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership service unavailable"))
			return
		}

		var payload createProjectPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		project, err := svc.CreateProject(ctx, memberships.CreateProjectInput{
			CreatorID:      middleware.UserUUIDFromContext(ctx),
			Title:          payload.Title,
			Description:    payload.Description,
			RequiredSkills: payload.RequiredSkills,
			MaxMembers:     payload.MaxMembers,
			Visibility:     enums.ProjectVisibility(payload.Visibility),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, project)
	}
}

// ProjectList returns the browse page with the caller's request status
// stamped on each row.
func ProjectList(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filters := projects.ProjectListFilters{
			Query: strings.TrimSpace(r.URL.Query().Get("query")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.ProjectStatus(raw)
			if !status.IsValid() {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid project status"))
				return
			}
			filters.Status = &status
		}

		list, err := svc.List(ctx, projects.ListProjectsInput{
			ViewerID: middleware.UserUUIDFromContext(ctx),
			Filters:  filters,
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

// ProjectSearch performs a keyword search over open projects.
func ProjectSearch(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable"))
			return
		}

		list, err := svc.Search(ctx, middleware.UserUUIDFromContext(ctx), r.URL.Query().Get("query"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ProjectMine splits the caller's projects into created and joined.
func ProjectMine(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable"))
			return
		}

		mine, err := svc.ListMine(ctx, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, mine)
	}
}

// ProjectDetail returns the project with its roster, members only.
func ProjectDetail(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "projects service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.GetDetail(ctx, projectID, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// ProjectMembershipStatus reports the caller's relationship with a project.
func ProjectMembershipStatus(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
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

		status, err := svc.GetMembershipStatus(ctx, projectID, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}

// ProjectMembers lists the roster of a project, creator first.
func ProjectMembers(svc memberships.Service, logg *logger.Logger) http.HandlerFunc {
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

		members, err := svc.ListProjectMembers(ctx, projectID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"members": members})
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, error) {
	return parseUUIDParam(r, "projectId", "project id")
}

func parseUUIDParam(r *http.Request, param, label string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, label+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+label)
	}
	return id, nil
}
