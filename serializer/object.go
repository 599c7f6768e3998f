package serializer

import (
	"strings"
)

// SerializeObject renders a shallow object according to opts.Style and
// opts.Explode. deepObject is always exploded.
//
// Values that are not objects produce an empty string. Absent members are
// skipped; composite members yield a *oaserrors.UnsupportedValueError.
// Styles that do not apply to objects yield a *oaserrors.ConfigError.
func SerializeObject(name string, value any, opts Options) (string, error) {
	if kindOf(value) != kindObject {
		return "", nil
	}
	if err := objectStyles.check("object.style", opts.Style); err != nil {
		return "", err
	}

	fields := objectFields(value)
	if opts.Explode || opts.Style == StyleDeepObject {
		return serializeObjectExploded(name, fields, opts)
	}

	// Flat form is always comma-joined k,v pairs; the style only wraps it.
	values := make([]string, 0, 2*len(fields))
	for _, f := range fields {
		encoded, present, err := encodeScalar(memberName(name, f.key), f.value, opts.AllowReserved)
		if err != nil {
			return "", err
		}
		if !present {
			continue
		}
		values = append(values, f.key, encoded)
	}
	return wrapFlat(opts.Style, name, strings.Join(values, ","), wrapRaw), nil
}

func serializeObjectExploded(name string, fields []field, opts Options) (string, error) {
	joiner := explodedJoiner(opts.Style)
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		pairName := f.key
		if opts.Style == StyleDeepObject {
			pairName = memberName(name, f.key)
		}
		pair, err := SerializePrimitive(pairName, f.value, opts)
		if err != nil {
			return "", err
		}
		if pair == "" {
			continue
		}
		values = append(values, pair)
	}

	final := strings.Join(values, joiner)
	if prefixedStyles[opts.Style] {
		return joiner + final, nil
	}
	return final, nil
}

// memberName is the deepObject name of an object member: name[key].
func memberName(name, key string) string {
	return name + "[" + key + "]"
}
