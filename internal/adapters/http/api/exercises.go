package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/extracker/internal/app"
)

// ExerciseDependencies defines the interface for logging exercises.
type ExerciseDependencies interface {
	AddExercise(ctx context.Context, userID string, in service.ExerciseInput) (ExerciseView, error)
}

// ExercisesHandler handles exercise requests.
type ExercisesHandler struct {
	deps ExerciseDependencies
}

// NewExercisesHandler creates a new exercises handler.
func NewExercisesHandler(deps ExerciseDependencies) *ExercisesHandler {
	return &ExercisesHandler{deps: deps}
}

// HandleAddExercise handles POST /api/users/{_id}/exercises requests.
func (h *ExercisesHandler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_exercise"
	var req addExerciseRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.AddExercise(r.Context(), chi.URLParam(r, "_id"), service.ExerciseInput{
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}
