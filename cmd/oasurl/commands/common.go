// Package commands provides CLI command handlers for oasurl.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasurl/client"
	"github.com/erraggy/oasurl/internal/settings"
	"github.com/erraggy/oasurl/serializer"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// stdout and stderr are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(stdout, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// NewLogger returns a client logger writing text records to stderr at the
// level configured by OASURL_LOG_LEVEL.
func NewLogger(s *settings.Settings) (client.Logger, error) {
	level, err := s.SlogLevel()
	if err != nil {
		return nil, err
	}
	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	return client.NewSlogAdapter(slog.New(handler)), nil
}

// ParamsFlag collects repeated name=value flags into ordered parameters.
//
//	--query tag=a --query tag=b      tag: [a, b]
//	--query filter[status]=ok        filter: {status: ok}
type ParamsFlag struct {
	params *serializer.Params
}

// String implements flag.Value.
func (p *ParamsFlag) String() string {
	if p == nil || p.params == nil {
		return ""
	}
	parts := make([]string, 0, p.params.Len())
	for pair := p.params.Oldest(); pair != nil; pair = pair.Next() {
		parts = append(parts, fmt.Sprintf("%s=%v", pair.Key, pair.Value))
	}
	return strings.Join(parts, " ")
}

// Set implements flag.Value.
func (p *ParamsFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	if p.params == nil {
		p.params = serializer.NewParams()
	}

	if open := strings.IndexByte(name, '['); open > 0 && strings.HasSuffix(name, "]") {
		return p.setMember(name[:open], name[open+1:len(name)-1], value)
	}

	existing, _ := p.params.Get(name)
	switch v := existing.(type) {
	case nil:
		p.params.Set(name, value)
	case string:
		p.params.Set(name, []string{v, value})
	case []string:
		p.params.Set(name, append(v, value))
	default:
		return fmt.Errorf("parameter %q given both as value and object", name)
	}
	return nil
}

func (p *ParamsFlag) setMember(name, key, value string) error {
	if key == "" {
		return fmt.Errorf("empty member name in %s[]", name)
	}
	existing, found := p.params.Get(name)
	if !found {
		p.params.Set(name, serializer.NewParams(key, value))
		return nil
	}
	obj, ok := existing.(*serializer.Params)
	if !ok {
		return fmt.Errorf("parameter %q given both as value and object", name)
	}
	obj.Set(key, value)
	return nil
}

// Params returns the collected parameters, or nil when none were given.
func (p *ParamsFlag) Params() *serializer.Params {
	if p == nil {
		return nil
	}
	return p.params
}

// mergeParams returns base with every entry of override set on top, without
// modifying either input.
func mergeParams(base, override *serializer.Params) *serializer.Params {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}
	out := serializer.NewParams()
	for pair := base.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	for pair := override.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}
