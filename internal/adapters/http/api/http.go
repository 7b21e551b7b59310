// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	service "github.com/okian/extracker/internal/app"
	"github.com/okian/extracker/internal/domain/types"
	"github.com/okian/extracker/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	UserDependencies
	ExerciseDependencies
	LogDependencies
}

// Read shapes returned by the handlers.
type (
	UserView     = types.UserView
	ExerciseView = types.ExerciseView
	StatsView    = types.StatsView
	LogView      = types.LogView
)

// defaultMaxBodyBytes caps request bodies when no limit is configured.
const defaultMaxBodyBytes = 1 << 20

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	usersHandler     *UsersHandler
	exercisesHandler *ExercisesHandler
	logsHandler      *LogsHandler

	allowedOrigins []string
	maxBodyBytes   int64
	logger         logger.Logger
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS origin allow-list.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithRequestLogger sets the logger used for per-request lines.
func WithRequestLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		usersHandler:     NewUsersHandler(deps),
		exercisesHandler: NewExercisesHandler(deps),
		logsHandler:      NewLogsHandler(deps),
		allowedOrigins:   []string{"*"},
		maxBodyBytes:     defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds a chi router carrying the middleware stack and every API route.
// Additional routes (docs, landing page) may be attached by the caller.
func (s *Server) Router(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(MetricsMiddleware)
	if s.logger != nil {
		r.Use(RequestLogger(s.logger))
	}
	r.Use(middleware.RequestSize(s.maxBodyBytes))

	s.Register(ctx, r)
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Method(http.MethodGet, "/metrics", s.healthHandler.MetricsHandler())
	r.Get("/stats", s.statsHandler.HandleStats)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", s.usersHandler.HandleCreateUser)
		r.Get("/", s.usersHandler.HandleListUsers)
		r.Post("/{_id}/exercises", s.exercisesHandler.HandleAddExercise)
		r.Get("/{_id}/logs", s.logsHandler.HandleGetLog)
	})
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error envelope codes.
const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeBadRequest = "bad_request"
	codeInternal   = "internal_error"
)

// msgMalformedBody is reported for bodies that could not be decoded.
const msgMalformedBody = "Malformed request body"

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeServiceError translates a service failure into the error envelope.
// Only messages carried by service errors reach the caller verbatim; anything
// else is reported as ErrInternal.
func writeServiceError(w http.ResponseWriter, err error) {
	msg := ErrInternal.Error()
	var svcErr *service.Error
	if errors.As(err, &svcErr) && svcErr.Msg != "" {
		msg = svcErr.Msg
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, msg)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, msg)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, codeBadRequest, msgMalformedBody)
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, msg)
	}
}
