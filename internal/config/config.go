// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"strings"
	"time"

	"github.com/okian/extracker/internal/domain/idgen"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// IDStrategy picks how user ids are generated: uuid, short or timestamp.
	IDStrategy string `koanf:"id_strategy"`

	// CORSAllowedOrigins is a comma-separated origin allow-list; "*" allows all.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// ReadTimeoutMS and WriteTimeoutMS bound HTTP request handling.
	ReadTimeoutMS  int `koanf:"read_timeout_ms"`
	WriteTimeoutMS int `koanf:"write_timeout_ms"`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":3000",
		IDStrategy:         idgen.StrategyUUID,
		CORSAllowedOrigins: "*",
		ReadTimeoutMS:      10_000,
		WriteTimeoutMS:     10_000,
		MaxBodyBytes:       1 << 20,
	}
}

// AllowedOrigins splits CORSAllowedOrigins into its entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting as a *FieldError, which matches
// ErrInvalidConfig under errors.Is.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return invalid("addr", "must not be empty")
	case c.ReadTimeoutMS <= 0:
		return invalid("read_timeout_ms", "must be positive, got %d", c.ReadTimeoutMS)
	case c.WriteTimeoutMS <= 0:
		return invalid("write_timeout_ms", "must be positive, got %d", c.WriteTimeoutMS)
	case c.MaxBodyBytes <= 0:
		return invalid("max_body_bytes", "must be positive, got %d", c.MaxBodyBytes)
	case len(c.AllowedOrigins()) == 0:
		return invalid("cors_allowed_origins", "must not be empty")
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log_level", "unknown level %q", c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "text", "json":
	default:
		return invalid("log_format", "unknown format %q", c.LogFormat)
	}

	if _, err := idgen.New(c.IDStrategy); err != nil {
		return invalid("id_strategy", "%v", err)
	}
	return nil
}
