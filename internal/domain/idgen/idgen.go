// Package idgen provides the pluggable strategies used to allocate user ids.
package idgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Strategy names accepted by New.
const (
	StrategyUUID      = "uuid"
	StrategyShort     = "short"
	StrategyTimestamp = "timestamp"
)

// shortIDLength matches the length of the base-36 ids the service used to hand out.
const shortIDLength = 13

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// ErrUnknownStrategy is returned by New for an unsupported strategy name.
var ErrUnknownStrategy = errors.New("unknown id strategy")

// Generator allocates opaque id strings. Implementations must be safe for
// concurrent use; uniqueness is enforced again by the store.
type Generator interface {
	Generate() string
}

// Func adapts a plain function to Generator.
type Func func() string

// Generate calls f.
func (f Func) Generate() string { return f() }

// New returns the generator registered under name.
func New(name string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyUUID:
		return UUID{}, nil
	case StrategyShort:
		return Short{}, nil
	case StrategyTimestamp:
		return NewTimestamp(nil), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
}

// UUID generates random (version 4) UUID strings.
type UUID struct{}

// Generate returns a new UUID string.
func (UUID) Generate() string { return uuid.NewString() }

// Short generates 13-character lowercase base-36 strings.
type Short struct{}

// Generate returns a new random base-36 id.
func (Short) Generate() string {
	var b strings.Builder
	b.Grow(shortIDLength)
	radix := big.NewInt(int64(len(base36)))
	for i := 0; i < shortIDLength; i++ {
		n, err := rand.Int(rand.Reader, radix)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			return uuid.NewString()
		}
		b.WriteByte(base36[n.Int64()])
	}
	return b.String()
}

// Timestamp generates decimal nanosecond timestamps. Consecutive calls never
// return the same value even when the clock doesn't advance.
type Timestamp struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewTimestamp builds a Timestamp generator. A nil clock uses time.Now.
func NewTimestamp(now func() time.Time) *Timestamp {
	if now == nil {
		now = time.Now
	}
	return &Timestamp{now: now}
}

// Generate returns the next timestamp id.
func (g *Timestamp) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.now().UnixNano()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return strconv.FormatInt(n, 10)
}
