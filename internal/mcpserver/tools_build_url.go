package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasurl/client"
	"github.com/erraggy/oasurl/serializer"
	"github.com/erraggy/oasurl/urlbuilder"
)

type buildURLInput struct {
	Request       *requestInput `json:"request,omitempty"        jsonschema:"Request description from a file or inline content. Fields below override it"`
	Path          string        `json:"path,omitempty"           jsonschema:"Path template, e.g. /pets/{id}"`
	BaseURL       string        `json:"base_url,omitempty"       jsonschema:"Base URL prepended to the path. A single trailing slash is removed"`
	PathParams    []paramInput  `json:"path_params,omitempty"    jsonschema:"Path parameters"`
	QueryParams   []paramInput  `json:"query_params,omitempty"   jsonschema:"Query parameters, serialized in the given order"`
	HeaderParams  []paramInput  `json:"header_params,omitempty"  jsonschema:"Header parameters, serialized in the simple style"`
	ArrayStyle    string        `json:"array_style,omitempty"    jsonschema:"Query array style: form, spaceDelimited or pipeDelimited"`
	ArrayExplode  *bool         `json:"array_explode,omitempty"  jsonschema:"Explode query arrays"`
	ObjectStyle   string        `json:"object_style,omitempty"   jsonschema:"Query object style: form or deepObject"`
	ObjectExplode *bool         `json:"object_explode,omitempty" jsonschema:"Explode query objects"`
	AllowReserved *bool         `json:"allow_reserved,omitempty" jsonschema:"Keep reserved characters in query values unencoded"`
	Strict        *bool         `json:"strict,omitempty"         jsonschema:"Fail when a path token has no matching parameter"`
}

type buildURLOutput struct {
	URL        string            `json:"url"`
	Headers    map[string]string `json:"headers,omitempty"`
	Unresolved []string          `json:"unresolved_path_params,omitempty"`
}

func handleBuildURL(_ context.Context, _ *mcp.CallToolRequest, input buildURLInput) (*mcp.CallToolResult, buildURLOutput, error) {
	req, err := input.Request.resolve()
	if err != nil {
		return errResult(err), buildURLOutput{}, nil
	}

	path, baseURL := input.Path, input.BaseURL
	params := &urlbuilder.RequestParams{}
	queryCfg, err := cfg.QueryConfig()
	if err != nil {
		return errResult(err), buildURLOutput{}, nil
	}
	if req != nil {
		if path == "" {
			path = req.Path
		}
		if baseURL == "" {
			baseURL = req.BaseURL
		}
		if req.Params != nil {
			*params = *req.Params
		}
		if req.QuerySerializer != nil {
			queryCfg = req.QuerySerializer
		}
	}
	if path == "" {
		return errResult(fmt.Errorf("path is required")), buildURLOutput{}, nil
	}

	for _, loc := range []struct {
		name string
		in   []paramInput
		dst  **serializer.Params
	}{
		{"path", input.PathParams, &params.Path},
		{"query", input.QueryParams, &params.Query},
		{"header", input.HeaderParams, &params.Header},
	} {
		p, err := toParams(loc.name, loc.in)
		if err != nil {
			return errResult(err), buildURLOutput{}, nil
		}
		if p != nil {
			*loc.dst = p
		}
	}

	queryCfg = overlayQueryConfig(queryCfg, input)

	opts := []client.Option{
		client.WithOptions(cfg.ClientOptions()),
		client.WithQueryConfig(queryCfg),
	}
	if baseURL != "" {
		opts = append(opts, client.WithBaseURL(baseURL))
	}
	if input.Strict != nil {
		opts = append(opts, client.WithStrictPathParams(*input.Strict))
	}
	c, err := client.New(opts...)
	if err != nil {
		return errResult(err), buildURLOutput{}, nil
	}

	u, err := c.URL(path, &client.RequestOptions{Params: params})
	if err != nil {
		return errResult(err), buildURLOutput{}, nil
	}
	headers, err := client.HeaderValues(params.Header)
	if err != nil {
		return errResult(err), buildURLOutput{}, nil
	}

	output := buildURLOutput{
		URL:        u,
		Unresolved: serializer.MissingPathParams(c.BaseURL()+path, params.Path),
	}
	if len(headers) > 0 {
		output.Headers = make(map[string]string, len(headers))
		for name := range headers {
			output.Headers[name] = headers.Get(name)
		}
	}
	return nil, output, nil
}

// overlayQueryConfig applies the tool's style arguments on top of base
// without modifying it.
func overlayQueryConfig(base *serializer.QueryConfig, input buildURLInput) *serializer.QueryConfig {
	out := &serializer.QueryConfig{}
	if base != nil {
		out.AllowReserved = base.AllowReserved
		out.Array = cloneStyleConfig(base.Array)
		out.Object = cloneStyleConfig(base.Object)
	}
	out.Array = overlayStyle(out.Array, input.ArrayStyle, input.ArrayExplode, serializer.StyleForm)
	out.Object = overlayStyle(out.Object, input.ObjectStyle, input.ObjectExplode, serializer.StyleDeepObject)
	if input.AllowReserved != nil {
		out.AllowReserved = *input.AllowReserved
	}
	return out
}

func cloneStyleConfig(sc *serializer.StyleConfig) *serializer.StyleConfig {
	if sc == nil {
		return nil
	}
	c := *sc
	return &c
}

func overlayStyle(sc *serializer.StyleConfig, style string, explode *bool, fallback serializer.Style) *serializer.StyleConfig {
	if style == "" && explode == nil {
		return sc
	}
	if sc == nil {
		sc = &serializer.StyleConfig{Style: fallback, Explode: true}
	}
	if style != "" {
		sc.Style = serializer.Style(style)
	}
	if explode != nil {
		sc.Explode = *explode
	}
	return sc
}
