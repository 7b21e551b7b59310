package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/extracker/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

// configEnvVars lists every variable Load reads so tests start clean.
var configEnvVars = []string{
	"TRACKER_CONFIG",
	"TRACKER_ADDR",
	"TRACKER_LOG_LEVEL",
	"TRACKER_LOG_FORMAT",
	"TRACKER_ID_STRATEGY",
	"TRACKER_CORS_ALLOWED_ORIGINS",
	"TRACKER_READ_TIMEOUT_MS",
	"TRACKER_WRITE_TIMEOUT_MS",
	"TRACKER_MAX_BODY_BYTES",
	"PORT",
}

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range configEnvVars {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
				convey.So(cfg.IDStrategy, convey.ShouldEqual, "uuid")
				convey.So(cfg.ReadTimeoutMS, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("TRACKER_ADDR", ":8080")
			t.Setenv("TRACKER_ID_STRATEGY", "short")
			t.Setenv("TRACKER_LOG_FORMAT", "json")
			t.Setenv("TRACKER_MAX_BODY_BYTES", "2048")
			t.Setenv("TRACKER_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.IDStrategy, convey.ShouldEqual, "short")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 2048)
				convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			t.Setenv("TRACKER_CONFIG", writeConfigFile(t, `
addr: ":9090"
log_level: debug
id_strategy: timestamp
read_timeout_ms: 2500
`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values are applied over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.IDStrategy, convey.ShouldEqual, "timestamp")
				convey.So(cfg.ReadTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.WriteTimeoutMS, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			t.Setenv("TRACKER_CONFIG", writeConfigFile(t, `
addr: ":9090"
id_strategy: timestamp
`))
			t.Setenv("TRACKER_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.IDStrategy, convey.ShouldEqual, "timestamp")
			})
		})

		convey.Convey("When PORT is set", func() {
			t.Setenv("TRACKER_ADDR", ":8080")
			t.Setenv("PORT", "4000")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it replaces the listen address", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":4000")
			})
		})

		convey.Convey("When PORT is not a number", func() {
			t.Setenv("PORT", "http")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			t.Setenv("TRACKER_CONFIG", writeConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			t.Setenv("TRACKER_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown id strategy", func() {
			t.Setenv("TRACKER_ID_STRATEGY", "sequential")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unknown id strategy")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			t.Setenv("TRACKER_READ_TIMEOUT_MS", "soon")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
