package serializer

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasurl/internal/testutil"
	"github.com/erraggy/oasurl/oaserrors"
)

type color string

type point struct{ X, Y int }

func TestSerializePrimitive(t *testing.T) {
	tests := []struct {
		name     string
		param    string
		value    any
		opts     Options
		expected string
	}{
		{name: "string", param: "a", value: "b", expected: "a=b"},
		{name: "space is percent-encoded", param: "a", value: "x y", expected: "a=x%20y"},
		{name: "space kept with allowReserved", param: "a", value: "x y", opts: Options{AllowReserved: true}, expected: "a=x y"},
		{
			name:     "reserved characters",
			param:    "q",
			value:    ":/?#[]@!$&'()*+,;=",
			expected: "q=%3A%2F%3F%23%5B%5D%40%21%24%26%27%28%29%2A%2B%2C%3B%3D",
		},
		{name: "unreserved characters untouched", param: "q", value: "A-z_0.9~", expected: "q=A-z_0.9~"},
		{name: "unicode", param: "city", value: "Zürich", expected: "city=Z%C3%BCrich"},
		{name: "int", param: "limit", value: 10, expected: "limit=10"},
		{name: "negative int64", param: "n", value: int64(-3), expected: "n=-3"},
		{name: "uint8", param: "n", value: uint8(7), expected: "n=7"},
		{name: "float", param: "ratio", value: 3.5, expected: "ratio=3.5"},
		{name: "float32", param: "ratio", value: float32(0.25), expected: "ratio=0.25"},
		{name: "bool", param: "active", value: true, expected: "active=true"},
		{name: "json number", param: "n", value: json.Number("12"), expected: "n=12"},
		{name: "bytes", param: "b", value: []byte("hi"), expected: "b=hi"},
		{name: "pointer", param: "p", value: testutil.Ptr("v"), expected: "p=v"},
		{name: "named string type", param: "c", value: color("red"), expected: "c=red"},
		{name: "empty string", param: "e", value: "", expected: "e="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SerializePrimitive(tt.param, tt.value, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSerializePrimitive_Absent(t *testing.T) {
	for _, v := range []any{nil, (*int)(nil), (*Params)(nil), (*url.URL)(nil), (*time.Time)(nil)} {
		got, err := SerializePrimitive("a", v, Options{})
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestSerializePrimitive_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "slice", value: []int{1, 2}},
		{name: "map", value: map[string]any{"a": 1}},
		{name: "params", value: NewParams("a", 1)},
		{name: "struct", value: point{X: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SerializePrimitive("a", tt.value, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrUnsupportedValue)
			assert.Empty(t, got)

			var uerr *oaserrors.UnsupportedValueError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, "a", uerr.Name)
		})
	}
}

func TestSerializePrimitive_Deterministic(t *testing.T) {
	first, err := SerializePrimitive("q", "a b&c", Options{})
	require.NoError(t, err)
	for range 10 {
		again, err := SerializePrimitive("q", "a b&c", Options{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
