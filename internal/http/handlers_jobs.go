// Package httpx provides HTTP handlers and utilities for the jobtrail API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/jobtrail/jobtrail/internal/domain/board"
	"github.com/jobtrail/jobtrail/internal/domain/model"
	"github.com/jobtrail/jobtrail/internal/service"
)

// JobHandlers provides HTTP handlers for job application operations.
// Every handler resolves ownership from the authenticated principal in the
// request context, never from the request body.
type JobHandlers struct {
	Svc *service.JobService
}

// refFromRequest builds the owner-scoped job reference for path-bound handlers.
func refFromRequest(w http.ResponseWriter, r *http.Request) (core.JobRef, bool) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("no authenticated principal"),
		})
		return core.JobRef{}, false
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("job id is required"),
		})
		return core.JobRef{}, false
	}
	return core.JobRef{UserID: principal.UserID, ID: id}, true
}

// userID resolves the authenticated caller for collection-level handlers.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	principal, ok := GetPrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("no authenticated principal"),
		})
		return "", false
	}
	return principal.UserID, true
}

// ListJobs handles GET /api/jobs.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	jobs, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if jobs == nil {
		jobs = []*model.Job{}
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// CreateJob handles POST /api/jobs.
func (h *JobHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Create(r.Context(), uid, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, job)
}

// GetJob handles GET /api/jobs/{id}.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	ref, ok := refFromRequest(w, r)
	if !ok {
		return
	}

	job, err := h.Svc.Get(r.Context(), ref)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// UpdateJob handles PUT /api/jobs/{id}.
func (h *JobHandlers) UpdateJob(w http.ResponseWriter, r *http.Request) {
	ref, ok := refFromRequest(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Update(r.Context(), ref, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// DeleteJob handles DELETE /api/jobs/{id}.
func (h *JobHandlers) DeleteJob(w http.ResponseWriter, r *http.Request) {
	ref, ok := refFromRequest(w, r)
	if !ok {
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), ref)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("job not found"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": ref.ID, "status": "deleted"})
}

// MoveJob handles POST /api/jobs/{id}/move.
func (h *JobHandlers) MoveJob(w http.ResponseWriter, r *http.Request) {
	ref, ok := refFromRequest(w, r)
	if !ok {
		return
	}

	var mv board.Move
	if !DecodeJSON(w, r, &mv) {
		return
	}

	job, err := h.Svc.Move(r.Context(), ref, mv)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// AppendJobEvent handles POST /api/jobs/{id}/events.
func (h *JobHandlers) AppendJobEvent(w http.ResponseWriter, r *http.Request) {
	ref, ok := refFromRequest(w, r)
	if !ok {
		return
	}

	var ev model.JobEvent
	if !DecodeJSON(w, r, &ev) {
		return
	}

	job, err := h.Svc.AppendEvent(r.Context(), ref, ev)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, job)
}

// Board handles GET /api/board.
func (h *JobHandlers) Board(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	view, err := h.Svc.Board(r.Context(), uid)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}
