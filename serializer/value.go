package serializer

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/erraggy/oasurl/oaserrors"
)

// Params is an insertion-ordered set of parameter values keyed by name.
// Serialization walks it oldest entry first, so output order matches the
// order in which parameters were set.
type Params = orderedmap.OrderedMap[string, any]

// NewParams builds Params from alternating name/value arguments.
// It panics if kv has odd length or a name is not a string, so it is meant
// for literals in code, not for untrusted input.
//
//	p := serializer.NewParams("id", 42, "tags", []string{"a", "b"})
func NewParams(kv ...any) *Params {
	if len(kv)%2 != 0 {
		panic("serializer: NewParams requires an even number of arguments")
	}
	p := orderedmap.New[string, any]()
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("serializer: NewParams argument %d is %T, not a string name", i, kv[i]))
		}
		p.Set(name, kv[i+1])
	}
	return p
}

// ParamsFromMap builds Params from a Go map, in sorted key order.
func ParamsFromMap[V any](m map[string]V) *Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := orderedmap.New[string, any]()
	for _, k := range keys {
		p.Set(k, m[k])
	}
	return p
}

type valueKind int

const (
	kindAbsent valueKind = iota
	kindScalar
	kindArray
	kindObject
	kindUnsupported
)

// kindOf classifies v. Pointers are followed; nil anywhere means absent.
func kindOf(v any) valueKind {
	switch t := v.(type) {
	case nil:
		return kindAbsent
	case *Params:
		if t == nil {
			return kindAbsent
		}
		return kindObject
	case string, bool, []byte, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return kindScalar
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return kindAbsent
		}
		rv = rv.Elem()
	}

	// Checked after the nil walk: a typed nil *url.URL is still a Stringer.
	switch v.(type) {
	case fmt.Stringer, error:
		return kindScalar
	}

	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return kindScalar
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return kindScalar
		}
		return kindArray
	case reflect.Array:
		return kindArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return kindObject
		}
		return kindUnsupported
	default:
		return kindUnsupported
	}
}

// derefValue follows pointers down to the underlying value.
func derefValue(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// arrayElements returns the elements of an array value.
func arrayElements(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	}
	rv := derefValue(v)
	if !rv.IsValid() {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// field is one member of an object value.
type field struct {
	key   string
	value any
}

// objectFields returns the members of an object value: insertion order for
// *Params, sorted key order for Go maps.
func objectFields(v any) []field {
	if p, ok := v.(*Params); ok {
		return paramsFields(p)
	}
	rv := derefValue(v)
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() != reflect.Map {
		return nil
	}
	fields := make([]field, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		fields = append(fields, field{key: iter.Key().String(), value: iter.Value().Interface()})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })
	return fields
}

func paramsFields(p *Params) []field {
	if p == nil {
		return nil
	}
	fields := make([]field, 0, p.Len())
	for pair := p.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, field{key: pair.Key, value: pair.Value})
	}
	return fields
}

// scalarString coerces a scalar value to its string form.
func scalarString(name string, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s, nil
	}

	// Named types (type Color string) are not known to cast.
	rv := derefValue(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), nil
		}
	}
	return "", unsupportedValue(name, v, "value cannot be converted to a string")
}

// encodeComponent percent-encodes everything outside the RFC 3986
// unreserved set. Spaces become %20, not "+".
func encodeComponent(s string, allowReserved bool) string {
	if allowReserved {
		return s
	}
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// encodeScalar renders a member value. present is false for absent values.
func encodeScalar(name string, v any, allowReserved bool) (encoded string, present bool, err error) {
	switch kindOf(v) {
	case kindAbsent:
		return "", false, nil
	case kindScalar:
	default:
		return "", false, unsupportedValue(name, v, nestedMessage)
	}
	s, err := scalarString(name, v)
	if err != nil {
		return "", false, err
	}
	return encodeComponent(s, allowReserved), true, nil
}

const nestedMessage = "deeply-nested arrays and objects are not supported; provide a custom serializer for these"

func unsupportedValue(name string, v any, msg string) error {
	return &oaserrors.UnsupportedValueError{Name: name, Value: v, Message: msg}
}
