package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/extracker/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.IDStrategy, convey.ShouldEqual, "uuid")
			convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"*"})
			convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 1<<20)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := config.New(context.Background())
	cfg.CORSAllowedOrigins = " https://a.example , ,https://b.example "
	got := cfg.AllowedOrigins()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		cases := []struct {
			name   string
			key    string
			mutate func(*config.Config)
		}{
			{"empty addr", "addr", func(c *config.Config) { c.Addr = " " }},
			{"zero read timeout", "read_timeout_ms", func(c *config.Config) { c.ReadTimeoutMS = 0 }},
			{"negative write timeout", "write_timeout_ms", func(c *config.Config) { c.WriteTimeoutMS = -1 }},
			{"zero body limit", "max_body_bytes", func(c *config.Config) { c.MaxBodyBytes = 0 }},
			{"no origins", "cors_allowed_origins", func(c *config.Config) { c.CORSAllowedOrigins = " , " }},
			{"bad log level", "log_level", func(c *config.Config) { c.LogLevel = "loud" }},
			{"bad log format", "log_format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"bad id strategy", "id_strategy", func(c *config.Config) { c.IDStrategy = "sequential" }},
		}

		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				tc.mutate(cfg)
				err := cfg.Validate()

				convey.Convey("Then validation fails with ErrInvalidConfig", func() {
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)

					var fe *config.FieldError
					convey.So(errors.As(err, &fe), convey.ShouldBeTrue)
					convey.So(fe.Key, convey.ShouldEqual, tc.key)
				})
			})
		}
	})
}
