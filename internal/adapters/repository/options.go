package repository

import "github.com/okian/extracker/internal/domain/idgen"

// defaultIDAttempts bounds regeneration when a generated id is already taken.
const defaultIDAttempts = 8

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithIDGenerator sets the strategy used to allocate user ids.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *MemoryStore) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithIDAttempts sets how many ids are tried before CreateUser gives up.
func WithIDAttempts(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.idAttempts = n
		}
	}
}

// WithMetrics toggles updates of the store gauges.
func WithMetrics(enabled bool) Option {
	return func(s *MemoryStore) {
		s.metrics = enabled
	}
}
