package client

import (
	"fmt"
	"maps"
	"strings"

	"dario.cat/mergo"

	"github.com/erraggy/oasurl"
	"github.com/erraggy/oasurl/oaserrors"
	"github.com/erraggy/oasurl/serializer"
)

// Options are the client-wide defaults applied to every request.
type Options struct {
	// BaseURL is prepended to every path. A single trailing "/" is removed.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Query configures the default query serializer.
	Query *serializer.QueryConfig `json:"query_serializer,omitempty" yaml:"query_serializer,omitempty" mapstructure:"query_serializer"`

	// Headers are set on every request built by NewRequest.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" mapstructure:"headers"`

	// UserAgent is sent unless the request already carries one.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" mapstructure:"user_agent"`

	// StrictPathParams rejects templates with unresolved path tokens.
	StrictPathParams bool `json:"strict_path_params,omitempty" yaml:"strict_path_params,omitempty" mapstructure:"strict_path_params"`
}

// DefaultOptions returns the lowest-precedence options layer.
func DefaultOptions() Options {
	return Options{
		UserAgent: oasurl.UserAgent(),
	}
}

// Option is a functional option for configuring a Client.
type Option func(*config) error

// config collects options before New resolves them.
type config struct {
	// provided is the WithOptions layer.
	provided Options
	// explicit is the With* layer. Bools, pointers and funcs cannot be
	// merged by value and live beside it.
	explicit Options

	query           *serializer.QueryConfig
	strict          *bool
	querySerializer serializer.QuerySerializer
	logger          Logger
}

// resolve merges the three option layers.
func (c *config) resolve() (Options, error) {
	opts := DefaultOptions()
	if err := mergo.Merge(&opts, c.provided, mergo.WithOverride); err != nil {
		return Options{}, &oaserrors.ConfigError{Option: "options", Message: "merging provided options", Cause: err}
	}
	if err := mergo.Merge(&opts, c.explicit, mergo.WithOverride); err != nil {
		return Options{}, &oaserrors.ConfigError{Option: "options", Message: "merging explicit options", Cause: err}
	}
	if c.query != nil {
		opts.Query = c.query
	}
	if c.strict != nil {
		opts.StrictPathParams = *c.strict
	}
	return opts, nil
}

// WithOptions layers o above DefaultOptions. Zero-valued fields of o leave
// the defaults in place. Later calls override earlier ones field by field.
func WithOptions(o Options) Option {
	return func(c *config) error {
		o.Headers = maps.Clone(o.Headers)
		// QueryConfig holds pointers; replace it whole instead of merging
		// into a caller's struct.
		if o.Query != nil {
			c.provided.Query = o.Query
			o.Query = nil
		}
		if err := mergo.Merge(&c.provided, o, mergo.WithOverride); err != nil {
			return &oaserrors.ConfigError{Option: "options", Message: "merging provided options", Cause: err}
		}
		return nil
	}
}

// WithBaseURL sets the base URL prepended to every path.
func WithBaseURL(baseURL string) Option {
	return func(c *config) error {
		c.explicit.BaseURL = baseURL
		return nil
	}
}

// WithQueryConfig sets the configuration of the default query serializer.
// It is validated when New runs.
func WithQueryConfig(cfg *serializer.QueryConfig) Option {
	return func(c *config) error {
		if cfg == nil {
			return fmt.Errorf("client: query config cannot be nil")
		}
		c.query = cfg
		return nil
	}
}

// WithQuerySerializer replaces the default query serializer with a custom
// one. It takes precedence over any QueryConfig.
func WithQuerySerializer(qs serializer.QuerySerializer) Option {
	return func(c *config) error {
		if qs == nil {
			return fmt.Errorf("client: query serializer cannot be nil")
		}
		c.querySerializer = qs
		return nil
	}
}

// WithHeader sets a header sent on every request. Repeated calls with the
// same name keep the last value.
func WithHeader(name, value string) Option {
	return func(c *config) error {
		if strings.TrimSpace(name) == "" {
			return &oaserrors.ConfigError{Option: "header", Value: name, Message: "header name cannot be empty"}
		}
		if c.explicit.Headers == nil {
			c.explicit.Headers = make(map[string]string)
		}
		c.explicit.Headers[name] = value
		return nil
	}
}

// WithUserAgent overrides the default User-Agent.
func WithUserAgent(userAgent string) Option {
	return func(c *config) error {
		c.explicit.UserAgent = userAgent
		return nil
	}
}

// WithStrictPathParams makes URL building fail when a path token has no
// matching parameter. Default is false.
func WithStrictPathParams(strict bool) Option {
	return func(c *config) error {
		c.strict = &strict
		return nil
	}
}

// WithLogger sets the logger. Default is NopLogger.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return fmt.Errorf("client: logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}
