package serializer

import (
	"strings"
)

// SerializeArray renders a shallow array according to opts.Style and
// opts.Explode.
//
// Values that are not arrays produce an empty string. Absent elements are
// skipped; composite elements yield a *oaserrors.UnsupportedValueError.
// deepObject yields a *oaserrors.ConfigError.
func SerializeArray(name string, value any, opts Options) (string, error) {
	if kindOf(value) != kindArray {
		return "", nil
	}
	if err := arrayStyles.check("array.style", opts.Style); err != nil {
		return "", err
	}

	elements := arrayElements(value)
	if !opts.Explode {
		return serializeArrayFlat(name, elements, opts)
	}

	joiner := explodedJoiner(opts.Style)
	bare := opts.Style == StyleSimple || opts.Style == StyleLabel
	values := make([]string, 0, len(elements))
	for _, v := range elements {
		var (
			fragment string
			err      error
		)
		if bare {
			fragment, _, err = encodeScalar(name, v, opts.AllowReserved)
		} else {
			fragment, err = SerializePrimitive(name, v, opts)
		}
		if err != nil {
			return "", err
		}
		if fragment == "" && kindOf(v) == kindAbsent {
			continue
		}
		values = append(values, fragment)
	}

	final := strings.Join(values, joiner)
	if prefixedStyles[opts.Style] {
		return joiner + final, nil
	}
	return final, nil
}

func serializeArrayFlat(name string, elements []any, opts Options) (string, error) {
	values := make([]string, 0, len(elements))
	for _, v := range elements {
		encoded, present, err := encodeScalar(name, v, opts.AllowReserved)
		if err != nil {
			return "", err
		}
		if !present {
			continue
		}
		values = append(values, encoded)
	}
	joined := strings.Join(values, flatArrayJoiner(opts.Style))
	return wrapFlat(opts.Style, name, joined, wrapForm), nil
}
