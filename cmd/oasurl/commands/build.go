package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/erraggy/oasurl/client"
	"github.com/erraggy/oasurl/internal/paramfile"
	"github.com/erraggy/oasurl/internal/settings"
	"github.com/erraggy/oasurl/serializer"
	"github.com/erraggy/oasurl/urlbuilder"
)

// BuildFlags contains flags for the build command
type BuildFlags struct {
	BaseURL       string
	Method        string
	File          string
	Path          ParamsFlag
	Query         ParamsFlag
	Header        ParamsFlag
	ArrayStyle    string
	ArrayExplode  bool
	ObjectStyle   string
	ObjectExplode bool
	AllowReserved bool
	Strict        bool
	Format        string
	Quiet         bool
}

// BuildResult is the structured output of the build command.
type BuildResult struct {
	Method     string            `json:"method" yaml:"method"`
	URL        string            `json:"url" yaml:"url"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Unresolved []string          `json:"unresolved_path_params,omitempty" yaml:"unresolved_path_params,omitempty"`
}

// SetupBuildFlags creates and configures a FlagSet for the build command.
// Returns the FlagSet and a BuildFlags struct with bound flag variables.
func SetupBuildFlags() (*flag.FlagSet, *BuildFlags) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	flags := &BuildFlags{}

	fs.StringVar(&flags.BaseURL, "base-url", "", "base URL prepended to the path (default $OASURL_BASE_URL)")
	fs.StringVar(&flags.Method, "method", http.MethodGet, "HTTP method")
	fs.StringVar(&flags.File, "file", "", "request file (YAML or JSON), or '-' for stdin")
	fs.StringVar(&flags.File, "f", "", "request file (shorthand)")
	fs.Var(&flags.Path, "path", "path parameter as name=value (repeatable)")
	fs.Var(&flags.Query, "query", "query parameter as name=value; repeat a name for an array, use name[key]=value for an object")
	fs.Var(&flags.Header, "header", "header parameter as name=value (repeatable)")
	fs.StringVar(&flags.ArrayStyle, "array-style", "", "query array style: form, spaceDelimited, pipeDelimited")
	fs.BoolVar(&flags.ArrayExplode, "array-explode", true, "explode query arrays")
	fs.StringVar(&flags.ObjectStyle, "object-style", "", "query object style: form, deepObject")
	fs.BoolVar(&flags.ObjectExplode, "object-explode", true, "explode query objects")
	fs.BoolVar(&flags.AllowReserved, "allow-reserved", false, "keep reserved characters in query values unencoded")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when a path token has no matching parameter")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the URL")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the URL")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasurl build [flags] <path-template>\n\n")
		Writef(output, "Build a request URL from a path template and parameters.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasurl build --base-url https://api.example.com --path id=42 /pets/{id}\n")
		Writef(output, "  oasurl build --query tags=a --query tags=b --array-style pipeDelimited --array-explode=false /pets\n")
		Writef(output, "  oasurl build --query 'filter[status]=available' /pets\n")
		Writef(output, "  oasurl build -f request.yaml --format json\n")
		Writef(output, "  cat request.yaml | oasurl build -f -\n")
		Writef(output, "\nPath Templates:\n")
		Writef(output, "  {name}    simple style    {.name}  label style\n")
		Writef(output, "  {;name}   matrix style    {name*}  explode\n")
		Writef(output, "\nEnvironment:\n")
		Writef(output, "  OASURL_* variables supply defaults; flags and request files override them.\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    URL built successfully\n")
		Writef(output, "  1    Invalid input or serialization error\n")
	}

	return fs, flags
}

// HandleBuild executes the build command
func HandleBuild(args []string) error {
	fs, flags := SetupBuildFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("build command takes at most one path template")
	}

	env, err := settings.Load()
	if err != nil {
		return err
	}
	logger, err := NewLogger(env)
	if err != nil {
		return err
	}

	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	var req *paramfile.Request
	if flags.File != "" {
		req, err = paramfile.Load(flags.File)
		if err != nil {
			return err
		}
	}

	plan, err := planBuild(env, req, flags, setFlags, fs.Arg(0))
	if err != nil {
		return err
	}

	opts := append(plan.clientOptions, client.WithLogger(logger))
	c, err := client.New(opts...)
	if err != nil {
		return err
	}

	reqOpts := &client.RequestOptions{Params: plan.params}
	u, err := c.URL(plan.path, reqOpts)
	if err != nil {
		return err
	}
	httpReq, err := c.NewRequest(context.Background(), plan.method, plan.path, reqOpts)
	if err != nil {
		return err
	}

	result := BuildResult{
		Method:     httpReq.Method,
		URL:        u,
		Unresolved: serializer.MissingPathParams(c.BaseURL()+plan.path, plan.params.Path),
	}
	if plan.params.Header != nil {
		for pair := plan.params.Header.Oldest(); pair != nil; pair = pair.Next() {
			if v := httpReq.Header.Get(pair.Key); v != "" {
				if result.Headers == nil {
					result.Headers = make(map[string]string)
				}
				result.Headers[pair.Key] = v
			}
		}
	}

	if flags.Format != FormatText {
		return OutputStructured(result, flags.Format)
	}

	Writef(stdout, "%s\n", result.URL)
	if flags.Quiet {
		return nil
	}
	names := make([]string, 0, len(result.Headers))
	for name := range result.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		Writef(stdout, "%s: %s\n", name, result.Headers[name])
	}
	if len(result.Unresolved) > 0 {
		Writef(stderr, "Warning: unresolved path parameters: %s\n", strings.Join(result.Unresolved, ", "))
	}
	return nil
}

// buildPlan is the resolved input of one build invocation.
type buildPlan struct {
	path          string
	method        string
	params        *urlbuilder.RequestParams
	clientOptions []client.Option
}

// planBuild layers environment defaults, the request file and flags, in
// that order of precedence.
func planBuild(env *settings.Settings, req *paramfile.Request, flags *BuildFlags, setFlags map[string]bool, pathArg string) (*buildPlan, error) {
	plan := &buildPlan{
		path:   pathArg,
		method: flags.Method,
		params: &urlbuilder.RequestParams{},
	}

	queryCfg, err := env.QueryConfig()
	if err != nil {
		return nil, err
	}
	opts := []client.Option{client.WithOptions(env.ClientOptions())}

	if req != nil {
		if plan.path == "" {
			plan.path = req.Path
		}
		if !setFlags["method"] && req.Method != "" {
			plan.method = req.Method
		}
		if req.BaseURL != "" {
			opts = append(opts, client.WithOptions(client.Options{BaseURL: req.BaseURL}))
		}
		if req.QuerySerializer != nil {
			queryCfg = req.QuerySerializer
		}
		if req.Params != nil {
			*plan.params = *req.Params
		}
	}
	if plan.path == "" {
		return nil, fmt.Errorf("build command requires a path template argument or a request file with a path")
	}

	plan.params.Path = mergeParams(plan.params.Path, flags.Path.Params())
	plan.params.Query = mergeParams(plan.params.Query, flags.Query.Params())
	plan.params.Header = mergeParams(plan.params.Header, flags.Header.Params())

	queryCfg = overlayQueryFlags(queryCfg, flags, setFlags)
	opts = append(opts, client.WithQueryConfig(queryCfg))

	if setFlags["base-url"] {
		opts = append(opts, client.WithBaseURL(flags.BaseURL))
	}
	if setFlags["strict"] {
		opts = append(opts, client.WithStrictPathParams(flags.Strict))
	}
	plan.clientOptions = opts
	return plan, nil
}

// overlayQueryFlags returns a copy of base with the explicitly set style
// flags applied.
func overlayQueryFlags(base *serializer.QueryConfig, flags *BuildFlags, setFlags map[string]bool) *serializer.QueryConfig {
	out := &serializer.QueryConfig{}
	if base != nil {
		out.AllowReserved = base.AllowReserved
		if base.Array != nil {
			a := *base.Array
			out.Array = &a
		}
		if base.Object != nil {
			o := *base.Object
			out.Object = &o
		}
	}
	if out.Array == nil {
		out.Array = &serializer.StyleConfig{Style: serializer.StyleForm, Explode: true}
	}
	if out.Object == nil {
		out.Object = &serializer.StyleConfig{Style: serializer.StyleDeepObject, Explode: true}
	}

	if setFlags["array-style"] {
		out.Array.Style = serializer.Style(flags.ArrayStyle)
	}
	if setFlags["array-explode"] {
		out.Array.Explode = flags.ArrayExplode
	}
	if setFlags["object-style"] {
		out.Object.Style = serializer.Style(flags.ObjectStyle)
	}
	if setFlags["object-explode"] {
		out.Object.Explode = flags.ObjectExplode
	}
	if setFlags["allow-reserved"] {
		out.AllowReserved = flags.AllowReserved
	}
	return out
}
