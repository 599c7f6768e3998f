package serializer

import (
	"fmt"
	"strings"
)

// StyleConfig selects the style and explode flag for one value kind.
type StyleConfig struct {
	Style   Style `json:"style,omitempty" yaml:"style,omitempty" mapstructure:"style"`
	Explode bool  `json:"explode" yaml:"explode" mapstructure:"explode"`
}

// QueryConfig configures a query serializer. The zero value (or nil) gives
// the OpenAPI defaults: arrays form/explode, objects deepObject/explode.
type QueryConfig struct {
	// Array overrides how array values are rendered.
	// Valid styles: form, spaceDelimited, pipeDelimited.
	Array *StyleConfig `json:"array,omitempty" yaml:"array,omitempty" mapstructure:"array"`

	// Object overrides how object values are rendered.
	// Valid styles: form, deepObject.
	Object *StyleConfig `json:"object,omitempty" yaml:"object,omitempty" mapstructure:"object"`

	// AllowReserved disables percent-encoding for every query value.
	AllowReserved bool `json:"allow_reserved,omitempty" yaml:"allow_reserved,omitempty" mapstructure:"allow_reserved"`
}

// Validate checks that the configured styles apply to query parameters.
func (c *QueryConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.Array != nil && c.Array.Style != "" {
		if err := queryArrayStyles.check("query.array.style", c.Array.Style); err != nil {
			return err
		}
	}
	if c.Object != nil && c.Object.Style != "" {
		if err := queryObjectStyles.check("query.object.style", c.Object.Style); err != nil {
			return err
		}
	}
	return nil
}

// QuerySerializer renders a full set of query parameters into a query string
// without the leading "?".
type QuerySerializer func(query *Params) (string, error)

// NewQuerySerializer returns a QuerySerializer for cfg. A nil cfg uses the
// defaults. The returned function holds no mutable state.
func NewQuerySerializer(cfg *QueryConfig) (QuerySerializer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	q := newQueryOptions(cfg)
	return q.serialize, nil
}

// MustQuerySerializer is like NewQuerySerializer but panics on an invalid
// configuration.
func MustQuerySerializer(cfg *QueryConfig) QuerySerializer {
	s, err := NewQuerySerializer(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultQuerySerializer renders query with the default configuration.
func DefaultQuerySerializer(query *Params) (string, error) {
	return newQueryOptions(nil).serialize(query)
}

type queryOptions struct {
	array         Options
	object        Options
	allowReserved bool
}

func newQueryOptions(cfg *QueryConfig) queryOptions {
	q := queryOptions{
		array:  Options{Style: StyleForm, Explode: true},
		object: Options{Style: StyleDeepObject, Explode: true},
	}
	if cfg == nil {
		return q
	}
	overlay(&q.array, cfg.Array)
	overlay(&q.object, cfg.Object)
	q.allowReserved = cfg.AllowReserved
	q.array.AllowReserved = cfg.AllowReserved
	q.object.AllowReserved = cfg.AllowReserved
	return q
}

func overlay(opts *Options, sc *StyleConfig) {
	if sc == nil {
		return
	}
	if sc.Style != "" {
		opts.Style = sc.Style
	}
	opts.Explode = sc.Explode
}

func (q queryOptions) serialize(query *Params) (string, error) {
	if query == nil {
		return "", nil
	}
	search := make([]string, 0, query.Len())
	for pair := query.Oldest(); pair != nil; pair = pair.Next() {
		var (
			fragment string
			err      error
		)
		switch kindOf(pair.Value) {
		case kindAbsent:
			continue
		case kindArray:
			if len(arrayElements(pair.Value)) == 0 {
				continue
			}
			fragment, err = SerializeArray(pair.Key, pair.Value, q.array)
		case kindObject:
			fragment, err = SerializeObject(pair.Key, pair.Value, q.object)
		default:
			fragment, err = SerializePrimitive(pair.Key, pair.Value, Options{AllowReserved: q.allowReserved})
		}
		if err != nil {
			return "", fmt.Errorf("serializing query parameter %q: %w", pair.Key, err)
		}
		if fragment != "" {
			search = append(search, fragment)
		}
	}
	return strings.Join(search, "&"), nil
}
