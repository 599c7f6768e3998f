// Package settings loads OASURL_* environment defaults shared by the CLI and
// the MCP server.
package settings

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/erraggy/oasurl/client"
	"github.com/erraggy/oasurl/oaserrors"
	"github.com/erraggy/oasurl/serializer"
)

// Prefix is the environment variable prefix.
const Prefix = "OASURL"

// Settings are defaults read from the environment. Command-line flags and
// tool arguments override them.
type Settings struct {
	BaseURL          string `envconfig:"BASE_URL"`
	AllowReserved    bool   `envconfig:"ALLOW_RESERVED" default:"false"`
	ArrayStyle       string `envconfig:"ARRAY_STYLE" default:"form"`
	ArrayExplode     bool   `envconfig:"ARRAY_EXPLODE" default:"true"`
	ObjectStyle      string `envconfig:"OBJECT_STYLE" default:"deepObject"`
	ObjectExplode    bool   `envconfig:"OBJECT_EXPLODE" default:"true"`
	StrictPathParams bool   `envconfig:"STRICT_PATH_PARAMS" default:"false"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"warn"`
}

// Default returns the settings used when no variables are set.
func Default() *Settings {
	return &Settings{
		ArrayStyle:    string(serializer.StyleForm),
		ArrayExplode:  true,
		ObjectStyle:   string(serializer.StyleDeepObject),
		ObjectExplode: true,
		LogLevel:      "warn",
	}
}

// Load reads OASURL_* variables and validates them.
func Load() (*Settings, error) {
	var s Settings
	if err := envconfig.Process(Prefix, &s); err != nil {
		return nil, &oaserrors.ConfigError{Option: "environment", Message: "reading " + Prefix + "_* variables", Cause: err}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks styles and the log level.
func (s *Settings) Validate() error {
	if _, err := s.QueryConfig(); err != nil {
		return err
	}
	if _, err := s.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// QueryConfig returns the query serializer configuration.
func (s *Settings) QueryConfig() (*serializer.QueryConfig, error) {
	cfg := &serializer.QueryConfig{
		Array:         &serializer.StyleConfig{Style: serializer.Style(s.ArrayStyle), Explode: s.ArrayExplode},
		Object:        &serializer.StyleConfig{Style: serializer.Style(s.ObjectStyle), Explode: s.ObjectExplode},
		AllowReserved: s.AllowReserved,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s_*_STYLE: %w", Prefix, err)
	}
	return cfg, nil
}

// ClientOptions maps the settings onto client options. Styles are not
// validated here; client.New does that.
func (s *Settings) ClientOptions() client.Options {
	return client.Options{
		BaseURL: s.BaseURL,
		Query: &serializer.QueryConfig{
			Array:         &serializer.StyleConfig{Style: serializer.Style(s.ArrayStyle), Explode: s.ArrayExplode},
			Object:        &serializer.StyleConfig{Style: serializer.Style(s.ObjectStyle), Explode: s.ObjectExplode},
			AllowReserved: s.AllowReserved,
		},
		StrictPathParams: s.StrictPathParams,
	}
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (s *Settings) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s.LogLevel))); err != nil {
		return 0, &oaserrors.ConfigError{Option: Prefix + "_LOG_LEVEL", Value: s.LogLevel, Message: "invalid log level", Cause: err}
	}
	return level, nil
}
