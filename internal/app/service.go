// Package service implements the exercise tracker operations consumed by the
// HTTP API.
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	repository "github.com/okian/extracker/internal/adapters/repository"
	"github.com/okian/extracker/internal/domain/calendar"
	"github.com/okian/extracker/internal/domain/idgen"
	"github.com/okian/extracker/internal/domain/logquery"
	"github.com/okian/extracker/internal/domain/model"
	"github.com/okian/extracker/internal/domain/types"
	"github.com/okian/extracker/pkg/logger"
	"github.com/okian/extracker/pkg/metrics"
)

// Operation names used for error ops and metric labels.
const (
	opCreateUser  = "create_user"
	opListUsers   = "list_users"
	opAddExercise = "add_exercise"
	opGetLog      = "get_log"
)

// ExerciseInput is the raw caller input for AddExercise.
type ExerciseInput struct {
	Description string
	Duration    string
	Date        string
}

// LogInput is the raw caller input for GetLog. Blank fields are not applied.
type LogInput struct {
	From  string
	To    string
	Limit string
}

// Service implements the API dependencies for the exercise tracker.
type Service struct {
	mu sync.RWMutex

	store repository.Store
	ids   idgen.Generator
	clock calendar.Clock

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore sets the backing store. Without it an in-memory store is created.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithIDGenerator sets the id strategy of the default in-memory store.
// It has no effect when WithStore is also given.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Service) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithClock sets the clock used to default exercise dates.
func WithClock(clock calendar.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithIDGenerator(s.ids))
	}

	return s
}

// Start marks the service ready. It is safe to call more than once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	stats := s.store.Stats(ctx)
	s.started = true
	s.logger.Info(ctx, "exercise tracker service started",
		logger.Int("users", stats.Users),
		logger.Int("exercises", stats.Exercises),
	)
	return nil
}

// Stop marks the service stopped. In-memory data is kept until the process exits.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.log().Info(context.Background(), "exercise tracker service stopped")
}

func (s *Service) log() logger.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.Get()
}

func observe(op string, start time.Time) {
	metrics.RecordServiceLatency(op, float64(time.Since(start).Microseconds())/1000)
}

// CreateUser registers a new user. Usernames need not be unique.
func (s *Service) CreateUser(ctx context.Context, username string) (types.UserView, error) {
	defer observe(opCreateUser, time.Now())

	if strings.TrimSpace(username) == "" {
		metrics.RecordValidationError(opCreateUser)
		return types.UserView{}, validation(opCreateUser, msgUsernameRequired, nil)
	}

	u, err := s.store.CreateUser(ctx, username)
	if err != nil {
		s.log().Error(ctx, "failed to create user", logger.Error(err))
		return types.UserView{}, &Error{Op: opCreateUser, Msg: "Could not create user", Err: err}
	}

	metrics.RecordUserCreated()
	s.log().Info(ctx, "user created",
		logger.String("id", u.ID),
		logger.String("username", u.Username),
	)
	return types.NewUserView(u), nil
}

// ListUsers returns every user in creation order.
func (s *Service) ListUsers(ctx context.Context) ([]types.UserView, error) {
	defer observe(opListUsers, time.Now())

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, &Error{Op: opListUsers, Msg: "Could not list users", Err: err}
	}

	out := make([]types.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, types.NewUserView(u))
	}
	return out, nil
}

// AddExercise validates in and appends it to the user's log. Input is
// validated before the user is looked up.
func (s *Service) AddExercise(ctx context.Context, userID string, in ExerciseInput) (types.ExerciseView, error) {
	defer observe(opAddExercise, time.Now())

	ex, err := s.parseExercise(in)
	if err != nil {
		metrics.RecordValidationError(opAddExercise)
		return types.ExerciseView{}, err
	}

	u, err := s.store.AppendExercise(ctx, userID, ex)
	if err != nil {
		return types.ExerciseView{}, s.lookupError(ctx, opAddExercise, userID, err)
	}

	metrics.RecordExerciseLogged()
	s.log().Info(ctx, "exercise logged",
		logger.String("id", u.ID),
		logger.String("description", ex.Description),
		logger.Int("duration", ex.Duration),
		logger.String("date", calendar.Format(ex.Date)),
	)
	return types.NewExerciseView(u, ex), nil
}

func (s *Service) parseExercise(in ExerciseInput) (model.Exercise, error) {
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Duration) == "" {
		return model.Exercise{}, validation(opAddExercise, msgExerciseRequired, nil)
	}

	duration, err := strconv.Atoi(strings.TrimSpace(in.Duration))
	if err != nil {
		return model.Exercise{}, validation(opAddExercise, msgDurationNotInteger, err)
	}

	date := calendar.Today(s.clock)
	if strings.TrimSpace(in.Date) != "" {
		date, err = calendar.Parse(in.Date)
		if err != nil {
			return model.Exercise{}, validation(opAddExercise, msgInvalidDate, err)
		}
	}

	return model.Exercise{Description: in.Description, Duration: duration, Date: date}, nil
}

// GetLog returns the user's log narrowed by in. Count is the number of entries
// inside the date window before the limit is applied.
func (s *Service) GetLog(ctx context.Context, userID string, in LogInput) (types.LogView, error) {
	defer observe(opGetLog, time.Now())

	q, err := parseLogQuery(in)
	if err != nil {
		metrics.RecordValidationError(opGetLog)
		return types.LogView{}, err
	}

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return types.LogView{}, s.lookupError(ctx, opGetLog, userID, err)
	}

	// u is a private copy, so an unfiltered request can hand its log over as is.
	log, count := u.Exercises, len(u.Exercises)
	if !q.IsZero() {
		log, count = q.Apply(u.Exercises)
	}
	metrics.RecordLogQuery(len(log))
	s.log().Debug(ctx, "log served",
		logger.String("id", u.ID),
		logger.Int("count", count),
		logger.Int("returned", len(log)),
	)
	return types.NewLogView(u, log, count), nil
}

func parseLogQuery(in LogInput) (logquery.Query, error) {
	var q logquery.Query
	var err error

	if q.From, err = calendar.ParseOptional(in.From); err != nil {
		return q, validation(opGetLog, msgInvalidFrom, err)
	}
	if q.To, err = calendar.ParseOptional(in.To); err != nil {
		return q, validation(opGetLog, msgInvalidTo, err)
	}
	if raw := strings.TrimSpace(in.Limit); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 0 {
			return q, validation(opGetLog, msgLimitNotNonNegative, convErr)
		}
		q.Limit = &n
	}
	return q, nil
}

func (s *Service) lookupError(ctx context.Context, op, userID string, err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		metrics.RecordNotFound(op)
		s.log().Debug(ctx, "unknown user", logger.String("op", op), logger.String("id", userID))
		return notFound(op, err)
	}
	s.log().Error(ctx, "store failure", logger.String("op", op), logger.Error(err))
	return &Error{Op: op, Msg: "Internal error", Err: err}
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) types.StatsView {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	stats := s.store.Stats(ctx)
	return types.StatsView{Started: started, Users: stats.Users, Exercises: stats.Exercises}
}
