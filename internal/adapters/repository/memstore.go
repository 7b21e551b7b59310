package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/extracker/internal/domain/idgen"
	"github.com/okian/extracker/internal/domain/model"
	"github.com/okian/extracker/pkg/metrics"
)

// MemoryStore keeps users in process memory behind a single RWMutex.
//
// Users are held in creation order; byID indexes into that slice.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []*model.User
	byID      map[string]int
	exercises int

	ids        idgen.Generator
	idAttempts int
	metrics    bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:       make(map[string]int),
		ids:        idgen.UUID{},
		idAttempts: defaultIDAttempts,
		metrics:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser implements Store.
func (s *MemoryStore) CreateUser(ctx context.Context, username string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.allocateID()
	if err != nil {
		return model.User{}, err
	}

	u := &model.User{ID: id, Username: username}
	s.byID[id] = len(s.users)
	s.users = append(s.users, u)
	s.publish()

	return u.Clone(), nil
}

// allocateID must be called with the write lock held.
func (s *MemoryStore) allocateID() (string, error) {
	for i := 0; i < s.idAttempts; i++ {
		id := s.ids.Generate()
		if id == "" {
			continue
		}
		if _, taken := s.byID[id]; !taken {
			return id, nil
		}
		if s.metrics {
			metrics.RecordIDCollision()
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrIDExhausted, s.idAttempts)
}

// ListUsers implements Store.
func (s *MemoryStore) ListUsers(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

// GetUser implements Store.
func (s *MemoryStore) GetUser(ctx context.Context, id string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return model.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return s.users[idx].Clone(), nil
}

// AppendExercise implements Store.
func (s *MemoryStore) AppendExercise(ctx context.Context, id string, ex model.Exercise) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return model.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	u := s.users[idx]
	u.Exercises = append(u.Exercises, ex)
	s.exercises++
	s.publish()

	return u.Clone(), nil
}

// Stats implements Store.
func (s *MemoryStore) Stats(_ context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Users: len(s.users), Exercises: s.exercises}
}

// publish must be called with the lock held.
func (s *MemoryStore) publish() {
	if !s.metrics {
		return
	}
	metrics.UpdateStoreUsers(len(s.users))
	metrics.UpdateStoreExercises(s.exercises)
}
