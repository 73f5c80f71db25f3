package controllers

import (
	"net/http"

	"github.com/synapsehq/synapse-backend/api/middleware"
	"github.com/synapsehq/synapse-backend/api/responses"
	"github.com/synapsehq/synapse-backend/api/validators"
	"github.com/synapsehq/synapse-backend/internal/files"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
	"github.com/synapsehq/synapse-backend/pkg/logger"
)

type addFilePayload struct {
	Name      string  `json:"name" validate:"required,max=255"`
	URL       string  `json:"url" validate:"required,url"`
	SizeBytes int64   `json:"size_bytes" validate:"min=0"`
	MimeType  *string `json:"mime_type" validate:"omitempty,max=100"`
}

// FileList returns a project's shared files, newest first.
func FileList(svc files.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "files service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListFiles(ctx, projectID, middleware.UserUUIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"files": list})
	}
}

// FileAdd registers externally-stored file metadata with a project.
func FileAdd(svc files.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "files service unavailable"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addFilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		file, err := svc.AddFile(ctx, files.AddFileInput{
			ProjectID:  projectID,
			UploaderID: middleware.UserUUIDFromContext(ctx),
			Name:       payload.Name,
			URL:        payload.URL,
			SizeBytes:  payload.SizeBytes,
			MimeType:   payload.MimeType,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, file)
	}
}

// FileRemove deletes file metadata; uploader or project creator only.
func FileRemove(svc files.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "files service unavailable"))
			return
		}

		fileID, err := parseUUIDParam(r, "fileId", "file id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemoveFile(ctx, fileID, middleware.UserUUIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"removed": true})
	}
}
