// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Shivanand-hulikatti/activity-roster/internal/metrics"
	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
	"github.com/Shivanand-hulikatti/activity-roster/internal/repository"
	"github.com/Shivanand-hulikatti/activity-roster/internal/service"
	"github.com/go-chi/chi/v5"
)

// Detail texts returned in the error envelope.
const (
	DetailNotFound          = "Activity not found"
	DetailAlreadyRegistered = "Student already signed up for this activity"
	DetailFull              = "Activity is full"
	DetailNotRegistered     = "Student is not signed up for this activity"
	DetailEmailRequired     = "Email is required"
	DetailInvalid           = "Invalid request"
	DetailInternal          = "Internal server error"
)

// ActivityHandler holds the HTTP handlers for the activity API.
type ActivityHandler struct {
	svc     *service.ActivityService
	metrics *metrics.Recorder
	log     *slog.Logger
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(svc *service.ActivityService, rec *metrics.Recorder, log *slog.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, metrics: rec, log: log}
}

// Routes mounts the activity API on r.
func (h *ActivityHandler) Routes(r chi.Router) {
	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.ListActivities)
		r.Post("/{activityName}/signup", h.Signup)
		r.Post("/{activityName}/unregister", h.Unregister)
	})
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Detail: detail})
}

// activityParam returns the decoded activity name. chi matches on RawPath
// when the request path holds escapes the default encoding would not
// produce (an encoded "/" for instance), and then hands back the escaped
// segment.
func activityParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "activityName")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

// mutationError maps service errors to a status, a detail, and a metrics
// outcome label.
func mutationError(err error) (int, string, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, DetailNotFound, "not_found"
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return http.StatusBadRequest, DetailAlreadyRegistered, "duplicate"
	case errors.Is(err, repository.ErrActivityFull):
		return http.StatusBadRequest, DetailFull, "full"
	case errors.Is(err, repository.ErrNotRegistered):
		return http.StatusNotFound, DetailNotRegistered, "not_registered"
	case errors.Is(err, service.ErrEmailRequired):
		return http.StatusBadRequest, DetailEmailRequired, "invalid"
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, DetailInvalid, "invalid"
	default:
		return http.StatusInternalServerError, DetailInternal, "error"
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// ListActivities handles GET /activities
// Returns the whole collection as a JSON object in display order. The
// response must never be served from a cache: the roster re-reads it after
// every mutation.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	activities, err := h.svc.ListActivities(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list activities", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to list activities")
		return
	}
	h.metrics.Fetch()

	writeJSON(w, http.StatusOK, activities)
}

// Signup handles POST /activities/{activityName}/signup?email=
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, metrics.OpSignup, h.svc.Signup)
}

// Unregister handles POST /activities/{activityName}/unregister?email=
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, metrics.OpUnregister, h.svc.Unregister)
}

func (h *ActivityHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, activity, email string) (string, error),
) {
	activity, err := activityParam(r)
	if err != nil {
		h.metrics.Mutation(op, "invalid")
		writeError(w, http.StatusBadRequest, DetailInvalid)
		return
	}
	email := r.URL.Query().Get("email")

	msg, err := fn(r.Context(), activity, email)
	if err != nil {
		status, detail, outcome := mutationError(err)
		h.metrics.Mutation(op, outcome)
		if status == http.StatusInternalServerError {
			h.log.ErrorContext(r.Context(), op+" failed",
				slog.String("activity", activity),
				slog.String("error", err.Error()),
			)
		}
		writeError(w, status, detail)
		return
	}

	h.metrics.Mutation(op, "ok")
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msg})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
