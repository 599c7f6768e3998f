package serializer

import (
	"fmt"
	"regexp"
	"strings"
)

// pathParamPattern matches one {token} in a path template.
var pathParamPattern = regexp.MustCompile(`\{[^{}]+\}`)

// pathToken is a parsed path template placeholder.
type pathToken struct {
	name    string
	style   Style
	explode bool
}

// parsePathToken reads the modifiers of a placeholder body (without braces):
// a trailing "*" explodes, a leading "." selects label and a leading ";"
// selects matrix.
func parsePathToken(body string) pathToken {
	tok := pathToken{name: body, style: StyleSimple}
	if strings.HasSuffix(tok.name, "*") {
		tok.explode = true
		tok.name = tok.name[:len(tok.name)-1]
	}
	switch {
	case strings.HasPrefix(tok.name, "."):
		tok.style = StyleLabel
		tok.name = tok.name[1:]
	case strings.HasPrefix(tok.name, ";"):
		tok.style = StyleMatrix
		tok.name = tok.name[1:]
	}
	return tok
}

// SerializePath substitutes path parameters into template.
//
// Supported placeholders:
//
//	{id}    simple style       /users/5
//	{.id}   label style        /users/.5
//	{;id}   matrix style       /users/;id=5
//	{id*}   exploded (any of the above may add a trailing *)
//
// A placeholder whose parameter is absent is left in the output unchanged;
// use MissingPathParams to detect that case up front. Path values are always
// percent-encoded.
func SerializePath(template string, params *Params) (string, error) {
	if params == nil {
		return template, nil
	}
	matches := pathParamPattern.FindAllStringIndex(template, -1)
	if len(matches) == 0 {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))
	last := 0
	for _, m := range matches {
		b.WriteString(template[last:m[0]])
		last = m[1]

		raw := template[m[0]:m[1]]
		tok := parsePathToken(raw[1 : len(raw)-1])
		value, ok := params.Get(tok.name)
		if !ok || kindOf(value) == kindAbsent {
			b.WriteString(raw)
			continue
		}

		segment, err := SerializeStyle(tok.name, value, Options{Style: tok.style, Explode: tok.explode})
		if err != nil {
			return "", fmt.Errorf("serializing path parameter %q: %w", tok.name, err)
		}
		b.WriteString(segment)
	}
	b.WriteString(template[last:])
	return b.String(), nil
}

// SerializeStyle renders any value kind in one of the simple, label or
// matrix styles, as used for path segments and headers. Arrays and objects
// go through SerializeArray and SerializeObject; scalars render as "v"
// (simple), ".v" (label) or ";name=v" (matrix).
func SerializeStyle(name string, value any, opts Options) (string, error) {
	switch kindOf(value) {
	case kindAbsent:
		return "", nil
	case kindArray:
		return SerializeArray(name, value, opts)
	case kindObject:
		return SerializeObject(name, value, opts)
	}

	if opts.Style == StyleMatrix {
		pair, err := SerializePrimitive(name, value, Options{AllowReserved: opts.AllowReserved})
		if err != nil {
			return "", err
		}
		return ";" + pair, nil
	}
	encoded, _, err := encodeScalar(name, value, opts.AllowReserved)
	if err != nil {
		return "", err
	}
	if opts.Style == StyleLabel {
		return "." + encoded, nil
	}
	return encoded, nil
}

// PathParamNames lists the parameter names referenced by template, in order
// of first appearance, with style modifiers removed.
func PathParamNames(template string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, raw := range pathParamPattern.FindAllString(template, -1) {
		tok := parsePathToken(raw[1 : len(raw)-1])
		if seen[tok.name] {
			continue
		}
		seen[tok.name] = true
		names = append(names, tok.name)
	}
	return names
}

// MissingPathParams lists the parameters referenced by template that are
// absent from params.
func MissingPathParams(template string, params *Params) []string {
	var missing []string
	for _, name := range PathParamNames(template) {
		if params == nil {
			missing = append(missing, name)
			continue
		}
		if v, ok := params.Get(name); !ok || kindOf(v) == kindAbsent {
			missing = append(missing, name)
		}
	}
	return missing
}
