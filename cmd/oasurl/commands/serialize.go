package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/erraggy/oasurl/serializer"
)

// Value kinds accepted by --kind.
const (
	KindAuto      = "auto"
	KindPrimitive = "primitive"
	KindArray     = "array"
	KindObject    = "object"
	KindPath      = "path"
)

// SerializeFlags contains flags for the serialize command
type SerializeFlags struct {
	Kind          string
	Style         string
	Explode       bool
	AllowReserved bool
	Format        string
}

// SerializeResult is the structured output of the serialize command.
type SerializeResult struct {
	Name   string `json:"name" yaml:"name"`
	Kind   string `json:"kind" yaml:"kind"`
	Style  string `json:"style" yaml:"style"`
	Result string `json:"result" yaml:"result"`
}

// SetupSerializeFlags creates and configures a FlagSet for the serialize command.
// Returns the FlagSet and a SerializeFlags struct with bound flag variables.
func SetupSerializeFlags() (*flag.FlagSet, *SerializeFlags) {
	fs := flag.NewFlagSet("serialize", flag.ContinueOnError)
	flags := &SerializeFlags{}

	fs.StringVar(&flags.Kind, "kind", KindAuto, "value kind: auto, primitive, array, object, or path (style-aware scalar)")
	fs.StringVar(&flags.Style, "style", string(serializer.StyleForm), "serialization style")
	fs.BoolVar(&flags.Explode, "explode", false, "explode arrays and objects")
	fs.BoolVar(&flags.AllowReserved, "allow-reserved", false, "keep reserved characters unencoded")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasurl serialize [flags] <name> <value...>\n\n")
		Writef(output, "Serialize one parameter value.\n\n")
		Writef(output, "One value is a primitive, several values an array, and key=value pairs an\n")
		Writef(output, "object, unless --kind says otherwise.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nStyles:\n")
		Writef(output, "  %s\n", strings.Join(styleNames(), ", "))
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasurl serialize --style label color blue black\n")
		Writef(output, "  oasurl serialize --style matrix --explode color R=100 G=200\n")
		Writef(output, "  oasurl serialize --kind array id 3\n")
	}

	return fs, flags
}

// HandleSerialize executes the serialize command
func HandleSerialize(args []string) error {
	fs, flags := SetupSerializeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("serialize command requires a name and at least one value")
	}

	style, err := serializer.ParseStyle(flags.Style)
	if err != nil {
		return err
	}

	name, values := fs.Arg(0), fs.Args()[1:]
	kind := flags.Kind
	if kind == KindAuto {
		kind = inferKind(values)
	}

	value, err := buildValue(kind, values)
	if err != nil {
		return err
	}

	opts := serializer.Options{Style: style, Explode: flags.Explode, AllowReserved: flags.AllowReserved}
	var out string
	switch kind {
	case KindPrimitive:
		out, err = serializer.SerializePrimitive(name, value, opts)
	case KindArray:
		out, err = serializer.SerializeArray(name, value, opts)
	case KindObject:
		out, err = serializer.SerializeObject(name, value, opts)
	case KindPath:
		out, err = serializer.SerializeStyle(name, value, opts)
	}
	if err != nil {
		return err
	}

	result := SerializeResult{Name: name, Kind: kind, Style: string(style), Result: out}
	if flags.Format != FormatText {
		return OutputStructured(result, flags.Format)
	}
	Writef(stdout, "%s\n", out)
	return nil
}

// inferKind picks a kind from the raw arguments.
func inferKind(values []string) string {
	pairs := 0
	for _, v := range values {
		if strings.Contains(v, "=") {
			pairs++
		}
	}
	switch {
	case pairs == len(values):
		return KindObject
	case len(values) == 1:
		return KindPrimitive
	default:
		return KindArray
	}
}

func buildValue(kind string, values []string) (any, error) {
	switch kind {
	case KindPrimitive, KindPath:
		if len(values) != 1 {
			return nil, fmt.Errorf("kind %s takes exactly one value, got %d", kind, len(values))
		}
		return values[0], nil
	case KindArray:
		return values, nil
	case KindObject:
		obj := serializer.NewParams()
		for _, v := range values {
			key, val, ok := strings.Cut(v, "=")
			if !ok || key == "" {
				return nil, fmt.Errorf("object members must be key=value, got %q", v)
			}
			obj.Set(key, val)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("invalid kind '%s'. Valid kinds: %s, %s, %s, %s, %s", kind, KindAuto, KindPrimitive, KindArray, KindObject, KindPath)
	}
}

func styleNames() []string {
	styles := serializer.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.String()
	}
	return names
}
