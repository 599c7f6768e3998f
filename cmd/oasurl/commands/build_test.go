package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasurl/internal/testutil"
	"github.com/erraggy/oasurl/oaserrors"
)

func TestSetupBuildFlags(t *testing.T) {
	fs, flags := SetupBuildFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, "GET", flags.Method)
		assert.Equal(t, FormatText, flags.Format)
		assert.True(t, flags.ArrayExplode)
		assert.True(t, flags.ObjectExplode)
		assert.False(t, flags.Strict)
		assert.False(t, flags.Quiet)
		assert.Nil(t, flags.Query.Params())
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{
			"--base-url", "https://api.test", "--path", "id=1", "--query", "q=x",
			"--header", "X-A=1", "--array-style", "pipeDelimited", "--strict", "-q",
			"--format", "json", "/pets/{id}",
		}
		require.NoError(t, fs.Parse(args))
		assert.Equal(t, "https://api.test", flags.BaseURL)
		assert.Equal(t, "pipeDelimited", flags.ArrayStyle)
		assert.True(t, flags.Strict)
		assert.True(t, flags.Quiet)
		assert.Equal(t, "json", flags.Format)
		assert.Equal(t, "/pets/{id}", fs.Arg(0))
		assert.NotNil(t, flags.Path.Params())
		assert.NotNil(t, flags.Header.Params())
	})
}

func TestHandleBuild(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		args     []string
		expected string
	}{
		{
			name:     "end to end",
			args:     []string{"--base-url", "https://api.test/", "--path", "id=42", "--query", "tags=a", "--query", "tags=b", "--query", "limit=10", "/pets/{id}"},
			expected: "https://api.test/pets/42?tags=a&tags=b&limit=10\n",
		},
		{
			name:     "pipe delimited",
			args:     []string{"--query", "ids=1", "--query", "ids=2", "--array-style", "pipeDelimited", "--array-explode=false", "/items"},
			expected: "/items?ids=1|2\n",
		},
		{
			name:     "deep object",
			args:     []string{"--query", "filter[status]=ok", "/pets"},
			expected: "/pets?filter[status]=ok\n",
		},
		{
			name:     "object form",
			args:     []string{"--query", "filter[status]=ok", "--object-style", "form", "--object-explode=false", "/pets"},
			expected: "/pets?filter=status,ok\n",
		},
		{
			name:     "matrix path",
			args:     []string{"--path", "ids=3", "--path", "ids=4", "/items/{;ids*}"},
			expected: "/items/;ids=3;ids=4\n",
		},
		{
			name:     "allow reserved",
			args:     []string{"--query", "next=/a b", "--allow-reserved", "/s"},
			expected: "/s?next=/a b\n",
		},
		{
			name:     "env defaults",
			env:      map[string]string{"OASURL_BASE_URL": "https://env.test/", "OASURL_ARRAY_STYLE": "spaceDelimited", "OASURL_ARRAY_EXPLODE": "false"},
			args:     []string{"--query", "ids=1", "--query", "ids=2", "/items"},
			expected: "https://env.test/items?ids=1%202\n",
		},
		{
			name:     "flag overrides env",
			env:      map[string]string{"OASURL_BASE_URL": "https://env.test", "OASURL_ARRAY_STYLE": "spaceDelimited"},
			args:     []string{"--base-url", "https://flag.test", "--array-style", "form", "--query", "ids=1", "--query", "ids=2", "/items"},
			expected: "https://flag.test/items?ids=1&ids=2\n",
		},
		{
			name:     "header params",
			args:     []string{"--header", "X-Trace=abc", "--header", "X-Ids=1", "--header", "X-Ids=2", "/s"},
			expected: "/s\nX-Ids: 1,2\nX-Trace: abc\n",
		},
		{
			name:     "quiet hides headers",
			args:     []string{"-q", "--header", "X-Trace=abc", "/s"},
			expected: "/s\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			out, _ := captureOutput(t)

			require.NoError(t, HandleBuild(tt.args))
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestHandleBuild_UnresolvedWarning(t *testing.T) {
	clearEnv(t)
	out, errOut := captureOutput(t)

	require.NoError(t, HandleBuild([]string{"/pets/{id}"}))
	assert.Equal(t, "/pets/{id}\n", out.String())
	assert.Contains(t, errOut.String(), "unresolved path parameters: id")
}

func TestHandleBuild_JSON(t *testing.T) {
	clearEnv(t)
	out, _ := captureOutput(t)

	require.NoError(t, HandleBuild([]string{
		"--format", "json", "--method", "post", "--path", "id=7", "--header", "X-A=1", "/pets/{id}/{kind}",
	}))

	var result BuildResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "POST", result.Method)
	assert.Equal(t, "/pets/7/{kind}", result.URL)
	assert.Equal(t, map[string]string{"X-A": "1"}, result.Headers)
	assert.Equal(t, []string{"kind"}, result.Unresolved)
}

func TestHandleBuild_YAML(t *testing.T) {
	clearEnv(t)
	out, _ := captureOutput(t)

	require.NoError(t, HandleBuild([]string{"--format", "yaml", "/pets"}))

	var result BuildResult
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "GET", result.Method)
	assert.Equal(t, "/pets", result.URL)
}

func TestHandleBuild_File(t *testing.T) {
	clearEnv(t)
	path := testutil.WriteTempFile(t, "req.yaml", `
base_url: https://file.test/
path: /pets/{id}
method: DELETE
params:
  path:
    id: 9
  query:
    z: 1
    a: 2
query_serializer:
  allow_reserved: true
`)

	t.Run("file only", func(t *testing.T) {
		out, _ := captureOutput(t)
		require.NoError(t, HandleBuild([]string{"-f", path, "--format", "json"}))

		var result BuildResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "DELETE", result.Method)
		assert.Equal(t, "https://file.test/pets/9?z=1&a=2", result.URL)
	})

	t.Run("flags override file", func(t *testing.T) {
		out, _ := captureOutput(t)
		require.NoError(t, HandleBuild([]string{
			"--file", path, "--base-url", "https://flag.test", "--path", "id=10", "--query", "a=x/y", "--method", "GET",
		}))
		assert.Equal(t, "https://flag.test/pets/10?z=1&a=x/y\n", out.String())
	})

	t.Run("argument overrides file path", func(t *testing.T) {
		out, _ := captureOutput(t)
		require.NoError(t, HandleBuild([]string{"-f", path, "-q", "/other/{id}"}))
		assert.Equal(t, "https://file.test/other/9?z=1&a=2\n", out.String())
	})
}

func TestHandleBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		args   []string
		config bool
		param  bool
	}{
		{name: "no path", args: []string{}},
		{name: "too many args", args: []string{"/a", "/b"}},
		{name: "bad format", args: []string{"--format", "xml", "/a"}},
		{name: "bad param flag", args: []string{"--query", "novalue", "/a"}},
		{name: "bad array style", args: []string{"--array-style", "matrix", "/a"}, config: true},
		{name: "bad method", args: []string{"--method", "CONNECT", "/a"}, config: true},
		{name: "bad env", env: map[string]string{"OASURL_OBJECT_STYLE": "label"}, args: []string{"/a"}, config: true},
		{name: "bad log level", env: map[string]string{"OASURL_LOG_LEVEL": "chatty"}, args: []string{"/a"}, config: true},
		{name: "strict", args: []string{"--strict", "/pets/{id}"}, param: true},
		{name: "strict from env", env: map[string]string{"OASURL_STRICT_PATH_PARAMS": "true"}, args: []string{"/pets/{id}"}, param: true},
		{name: "missing file", args: []string{"-f", "/nonexistent/req.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			captureOutput(t)

			err := HandleBuild(tt.args)
			require.Error(t, err)
			if tt.config {
				assert.ErrorIs(t, err, oaserrors.ErrConfig)
			}
			if tt.param {
				assert.ErrorIs(t, err, oaserrors.ErrMissingParam)
			}
		})
	}
}

func TestHandleBuild_Help(t *testing.T) {
	captureOutput(t)
	assert.NoError(t, HandleBuild([]string{"--help"}))
}
