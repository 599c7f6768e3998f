package serializer

import (
	"github.com/erraggy/oasurl/oaserrors"
)

// Style is an OpenAPI parameter serialization style.
type Style string

// Serialization styles defined by OpenAPI 3.x.
const (
	StyleSimple         Style = "simple"
	StyleLabel          Style = "label"
	StyleMatrix         Style = "matrix"
	StyleForm           Style = "form"
	StyleDeepObject     Style = "deepObject"
	StyleSpaceDelimited Style = "spaceDelimited"
	StylePipeDelimited  Style = "pipeDelimited"
)

// Styles returns every known serialization style.
func Styles() []Style {
	return []Style{
		StyleSimple,
		StyleLabel,
		StyleMatrix,
		StyleForm,
		StyleDeepObject,
		StyleSpaceDelimited,
		StylePipeDelimited,
	}
}

// String implements fmt.Stringer.
func (s Style) String() string {
	return string(s)
}

// IsValid reports whether s is a known style.
func (s Style) IsValid() bool {
	for _, known := range Styles() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStyle converts a style name into a Style.
// Returns a *oaserrors.ConfigError for unknown names.
func ParseStyle(name string) (Style, error) {
	s := Style(name)
	if !s.IsValid() {
		return "", &oaserrors.ConfigError{
			Option:  "style",
			Value:   name,
			Message: "unknown serialization style",
		}
	}
	return s, nil
}

// Options controls how a single parameter is serialized.
type Options struct {
	// Style selects the serialization style
	Style Style
	// Explode expands composite values into one fragment per member
	Explode bool
	// AllowReserved disables percent-encoding of values
	AllowReserved bool
}

type styleSet map[Style]bool

func newStyleSet(styles ...Style) styleSet {
	set := make(styleSet, len(styles))
	for _, s := range styles {
		set[s] = true
	}
	return set
}

var (
	objectStyles      = newStyleSet(StyleSimple, StyleLabel, StyleMatrix, StyleForm, StyleDeepObject)
	arrayStyles       = newStyleSet(StyleSimple, StyleLabel, StyleMatrix, StyleForm, StyleSpaceDelimited, StylePipeDelimited)
	queryArrayStyles  = newStyleSet(StyleForm, StyleSpaceDelimited, StylePipeDelimited)
	queryObjectStyles = newStyleSet(StyleForm, StyleDeepObject)
)

func (set styleSet) check(option string, s Style) error {
	if set[s] {
		return nil
	}
	msg := "serialization style not supported here"
	if !s.IsValid() {
		msg = "unknown serialization style"
	}
	return &oaserrors.ConfigError{Option: option, Value: string(s), Message: msg}
}

// explodedJoiners separates exploded members. Styles without an entry use "&".
var explodedJoiners = map[Style]string{
	StyleSimple: ",",
	StyleLabel:  ".",
	StyleMatrix: ";",
}

func explodedJoiner(s Style) string {
	if j, ok := explodedJoiners[s]; ok {
		return j
	}
	return "&"
}

// prefixedStyles repeat their joiner in front of the first member.
var prefixedStyles = newStyleSet(StyleLabel, StyleMatrix)

// flatArrayJoiners separates array elements when explode is false.
// Styles without an entry use ",".
var flatArrayJoiners = map[Style]string{
	StyleForm:           ",",
	StyleSpaceDelimited: "%20",
	StylePipeDelimited:  "|",
}

func flatArrayJoiner(s Style) string {
	if j, ok := flatArrayJoiners[s]; ok {
		return j
	}
	return ","
}

// wrapFunc turns an already-joined flat value into the final fragment.
type wrapFunc func(name, joined string) string

func wrapRaw(_, joined string) string       { return joined }
func wrapLabel(_, joined string) string     { return "." + joined }
func wrapMatrix(name, joined string) string { return ";" + name + "=" + joined }
func wrapForm(name, joined string) string   { return name + "=" + joined }

// flatWrappers wraps non-exploded values. Each serializer supplies its own
// fallback for styles missing here.
var flatWrappers = map[Style]wrapFunc{
	StyleSimple: wrapRaw,
	StyleLabel:  wrapLabel,
	StyleMatrix: wrapMatrix,
	StyleForm:   wrapForm,
}

func wrapFlat(s Style, name, joined string, fallback wrapFunc) string {
	if wrap, ok := flatWrappers[s]; ok {
		return wrap(name, joined)
	}
	return fallback(name, joined)
}
