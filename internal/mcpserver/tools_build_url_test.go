package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasurl/internal/settings"
	"github.com/erraggy/oasurl/internal/testutil"
)

func ptrBool(b bool) *bool { return &b }

func callBuildURL(t *testing.T, input buildURLInput) (*mcp.CallToolResult, buildURLOutput) {
	t.Helper()
	result, output, err := handleBuildURL(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	return result, output
}

func TestBuildURLTool(t *testing.T) {
	withConfig(t, settings.Default())

	tests := []struct {
		name       string
		input      buildURLInput
		wantURL    string
		wantHeader map[string]string
		unresolved []string
	}{
		{
			name: "end to end",
			input: buildURLInput{
				Path:        "/pets/{id}",
				BaseURL:     "https://api.test/",
				PathParams:  []paramInput{{Name: "id", Value: float64(42)}},
				QueryParams: []paramInput{{Name: "tags", Value: []any{"a", "b"}}, {Name: "limit", Value: float64(10)}},
			},
			wantURL: "https://api.test/pets/42?tags=a&tags=b&limit=10",
		},
		{
			name: "array style override",
			input: buildURLInput{
				Path:         "/items",
				QueryParams:  []paramInput{{Name: "ids", Value: []any{float64(1), float64(2)}}},
				ArrayStyle:   "pipeDelimited",
				ArrayExplode: ptrBool(false),
			},
			wantURL: "/items?ids=1|2",
		},
		{
			name: "json object uses sorted keys",
			input: buildURLInput{
				Path:        "/pets",
				QueryParams: []paramInput{{Name: "filter", Value: map[string]any{"status": "ok", "kind": "dog"}}},
			},
			wantURL: "/pets?filter[kind]=dog&filter[status]=ok",
		},
		{
			name: "object form style",
			input: buildURLInput{
				Path:          "/pets",
				QueryParams:   []paramInput{{Name: "filter", Value: map[string]any{"a": "1"}}},
				ObjectStyle:   "form",
				ObjectExplode: ptrBool(false),
			},
			wantURL: "/pets?filter=a,1",
		},
		{
			name: "allow reserved",
			input: buildURLInput{
				Path:          "/s",
				QueryParams:   []paramInput{{Name: "q", Value: "a/b"}},
				AllowReserved: ptrBool(true),
			},
			wantURL: "/s?q=a/b",
		},
		{
			name: "header params",
			input: buildURLInput{
				Path:         "/s",
				HeaderParams: []paramInput{{Name: "X-Ids", Value: []any{"1", "2"}}, {Name: "X-Skip", Value: nil}},
			},
			wantURL:    "/s",
			wantHeader: map[string]string{"X-Ids": "1,2"},
		},
		{
			name:       "unresolved path params are reported",
			input:      buildURLInput{Path: "/pets/{id}/{;kind}"},
			wantURL:    "/pets/{id}/{;kind}",
			unresolved: []string{"id", "kind"},
		},
		{
			name: "inline request",
			input: buildURLInput{
				Request: &requestInput{Content: `
base_url: https://api.test
path: /pets/{id}
params:
  path:
    id: 7
  query:
    z: 1
    a: 2
query_serializer:
  array:
    style: spaceDelimited
`},
				QueryParams: []paramInput{{Name: "ids", Value: []any{"x", "y"}}},
			},
			wantURL: "https://api.test/pets/7?ids=x%20y",
		},
		{
			name: "inline request fields",
			input: buildURLInput{
				Request: &requestInput{Content: `{"path": "/a/{b}", "params": {"path": {"b": "c d"}, "query": {"z": 1, "a": 2}}}`},
				BaseURL: "https://override.test",
			},
			wantURL: "https://override.test/a/c%20d?z=1&a=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output := callBuildURL(t, tt.input)
			require.Nil(t, result, "unexpected error result")
			assert.Equal(t, tt.wantURL, output.URL)
			assert.Equal(t, tt.wantHeader, output.Headers)
			assert.Equal(t, tt.unresolved, output.Unresolved)
		})
	}
}

func TestBuildURLTool_RequestFile(t *testing.T) {
	withConfig(t, settings.Default())
	path := testutil.WriteTempFile(t, "req.yaml", "path: /pets\nparams:\n  query:\n    limit: 5\n")

	result, output := callBuildURL(t, buildURLInput{Request: &requestInput{File: path}})
	require.Nil(t, result)
	assert.Equal(t, "/pets?limit=5", output.URL)
}

func TestBuildURLTool_EnvDefaults(t *testing.T) {
	s := settings.Default()
	s.BaseURL = "https://env.test/"
	s.ArrayStyle = "pipeDelimited"
	s.ArrayExplode = false
	withConfig(t, s)

	result, output := callBuildURL(t, buildURLInput{
		Path:        "/items",
		QueryParams: []paramInput{{Name: "ids", Value: []any{"a", "b"}}},
	})
	require.Nil(t, result)
	assert.Equal(t, "https://env.test/items?ids=a|b", output.URL)
}

func TestBuildURLTool_Errors(t *testing.T) {
	withConfig(t, settings.Default())

	tests := []struct {
		name     string
		input    buildURLInput
		contains string
	}{
		{name: "missing path", input: buildURLInput{}, contains: "path is required"},
		{
			name:     "strict with missing params",
			input:    buildURLInput{Path: "/pets/{id}", Strict: ptrBool(true)},
			contains: "missing parameter",
		},
		{
			name:     "invalid array style",
			input:    buildURLInput{Path: "/x", ArrayStyle: "matrix"},
			contains: "not supported",
		},
		{
			name:     "nested value",
			input:    buildURLInput{Path: "/x", QueryParams: []paramInput{{Name: "a", Value: []any{[]any{"b"}}}}},
			contains: "deeply-nested",
		},
		{
			name:     "empty param name",
			input:    buildURLInput{Path: "/x", PathParams: []paramInput{{Value: "v"}}},
			contains: "empty name",
		},
		{
			name:     "both file and content",
			input:    buildURLInput{Request: &requestInput{File: "a.yaml", Content: "path: /x"}},
			contains: "only one",
		},
		{
			name:     "bad inline request",
			input:    buildURLInput{Request: &requestInput{Content: "unknown: 1"}},
			contains: "unknown key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := callBuildURL(t, tt.input)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			text, ok := result.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.contains)
		})
	}
}

func TestOverlayQueryConfig_DoesNotMutateBase(t *testing.T) {
	base, err := settings.Default().QueryConfig()
	require.NoError(t, err)

	out := overlayQueryConfig(base, buildURLInput{ArrayStyle: "pipeDelimited", ArrayExplode: ptrBool(false)})
	assert.Equal(t, "pipeDelimited", string(out.Array.Style))
	assert.False(t, out.Array.Explode)
	assert.Equal(t, "form", string(base.Array.Style))
	assert.True(t, base.Array.Explode)
}
