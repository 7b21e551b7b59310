package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/extracker/internal/app"
)

// LogDependencies defines the interface for log queries.
type LogDependencies interface {
	GetLog(ctx context.Context, userID string, in service.LogInput) (LogView, error)
}

// LogsHandler handles log requests.
type LogsHandler struct {
	deps LogDependencies
}

// NewLogsHandler creates a new logs handler.
func NewLogsHandler(deps LogDependencies) *LogsHandler {
	return &LogsHandler{deps: deps}
}

// HandleGetLog handles GET /api/users/{_id}/logs requests.
func (h *LogsHandler) HandleGetLog(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_log"
	q := r.URL.Query()
	view, err := h.deps.GetLog(r.Context(), chi.URLParam(r, "_id"), service.LogInput{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Limit: q.Get("limit"),
	})
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}
