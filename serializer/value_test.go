package serializer

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParams(t *testing.T) {
	p := NewParams("b", 1, "a", 2)
	require.Equal(t, 2, p.Len())

	var keys []string
	for pair := p.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"b", "a"}, keys)
}

func TestNewParams_Panics(t *testing.T) {
	assert.Panics(t, func() { NewParams("odd") })
	assert.Panics(t, func() { NewParams(1, "value") })
}

func TestParamsFromMap(t *testing.T) {
	p := ParamsFromMap(map[string]int{"z": 1, "m": 2, "a": 3})

	fields := paramsFields(p)
	require.Len(t, fields, 3)
	assert.Equal(t, "a", fields[0].key)
	assert.Equal(t, "m", fields[1].key)
	assert.Equal(t, "z", fields[2].key)
	assert.Equal(t, 3, fields[0].value)
}

func TestKindOf(t *testing.T) {
	var nilMap map[string]int

	tests := []struct {
		name     string
		value    any
		expected valueKind
	}{
		{"nil", nil, kindAbsent},
		{"nil pointer", (*int)(nil), kindAbsent},
		{"nil params", (*Params)(nil), kindAbsent},
		{"nil stringer pointer", (*url.URL)(nil), kindAbsent},
		{"nil time pointer", (*time.Time)(nil), kindAbsent},
		{"nil error pointer", (*url.Error)(nil), kindAbsent},
		{"stringer pointer", &url.URL{Host: "x"}, kindScalar},
		{"string", "s", kindScalar},
		{"named string", color("red"), kindScalar},
		{"int pointer", new(int), kindScalar},
		{"bytes", []byte("x"), kindScalar},
		{"time is a stringer", time.Unix(0, 0).UTC(), kindScalar},
		{"error", errors.New("e"), kindScalar},
		{"slice", []int{1}, kindArray},
		{"array", [1]string{"a"}, kindArray},
		{"params", NewParams(), kindObject},
		{"map", map[string]int{}, kindObject},
		{"nil map", nilMap, kindObject},
		{"int keyed map", map[int]string{}, kindUnsupported},
		{"struct", point{}, kindUnsupported},
		{"func", func() {}, kindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, kindOf(tt.value))
		})
	}
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "a%20b%2Bc", encodeComponent("a b+c", false))
	assert.Equal(t, "a b+c", encodeComponent("a b+c", true))
	assert.Equal(t, "%E2%9C%93", encodeComponent("✓", false))
}

func TestScalarString(t *testing.T) {
	type level uint16
	type ratio float64

	tests := []struct {
		value    any
		expected string
	}{
		{level(3), "3"},
		{ratio(0.5), "0.5"},
		{int32(-7), "-7"},
		{1e6, "1000000"},
		{false, "false"},
	}

	for _, tt := range tests {
		got, err := scalarString("x", tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}
