package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/erraggy/oasurl/oaserrors"
	"github.com/erraggy/oasurl/serializer"
	"github.com/erraggy/oasurl/urlbuilder"
)

// SupportedMethods lists the HTTP methods accepted by NewRequest.
var SupportedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodDelete,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodTrace,
}

// headerOptions is how header parameters are serialized.
var headerOptions = serializer.Options{Style: serializer.StyleSimple, AllowReserved: true}

// RequestOptions are per-call settings. A nil *RequestOptions is valid.
type RequestOptions struct {
	// BaseURL overrides the client base URL for this call.
	BaseURL string
	// Params holds the path, query and header parameters.
	Params *urlbuilder.RequestParams
	// QuerySerializer overrides the client query serializer for this call.
	QuerySerializer serializer.QuerySerializer
	// Headers are copied onto the request before header parameters.
	Headers http.Header
	// Body is the request body, if any.
	Body io.Reader
}

// Client builds URLs and requests from path templates.
type Client struct {
	baseURL         string
	querySerializer serializer.QuerySerializer
	headers         http.Header
	userAgent       string
	strict          bool
	logger          Logger
}

// New creates a Client from the given options.
//
// Example:
//
//	c, err := client.New(
//	    client.WithBaseURL("https://api.example.com/"),
//	    client.WithQueryConfig(&serializer.QueryConfig{
//	        Array: &serializer.StyleConfig{Style: serializer.StylePipeDelimited, Explode: false},
//	    }),
//	)
func New(opts ...Option) (*Client, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	resolved, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	qs := cfg.querySerializer
	if qs == nil {
		qs, err = serializer.NewQuerySerializer(resolved.Query)
		if err != nil {
			return nil, err
		}
	}

	headers := make(http.Header, len(resolved.Headers))
	for name, value := range resolved.Headers {
		headers.Set(name, value)
	}

	logger := cfg.logger
	if logger == nil {
		logger = NopLogger{}
	}

	return &Client{
		baseURL:         urlbuilder.RemoveTrailingSlash(resolved.BaseURL),
		querySerializer: qs,
		headers:         headers,
		userAgent:       resolved.UserAgent,
		strict:          resolved.StrictPathParams,
		logger:          logger,
	}, nil
}

// BaseURL returns the base URL with its trailing slash removed.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL builds the final URL for path. opts may be nil.
func (c *Client) URL(path string, opts *RequestOptions) (string, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	baseURL := c.baseURL
	if opts.BaseURL != "" {
		baseURL = urlbuilder.RemoveTrailingSlash(opts.BaseURL)
	}
	qs := c.querySerializer
	if opts.QuerySerializer != nil {
		qs = opts.QuerySerializer
	}

	if c.strict {
		var pathParams *serializer.Params
		if opts.Params != nil {
			pathParams = opts.Params.Path
		}
		template := baseURL + path
		if missing := serializer.MissingPathParams(template, pathParams); len(missing) > 0 {
			return "", &oaserrors.MissingParamError{Location: "path", Names: missing, Template: template}
		}
	}

	return urlbuilder.Build(path, urlbuilder.Options{
		BaseURL:         baseURL,
		Params:          opts.Params,
		QuerySerializer: qs,
	})
}

// NewRequest builds an *http.Request for method and path. The request is
// not sent.
//
// Headers are applied in order: client headers, opts.Headers, then header
// parameters. User-Agent is set last, only when still empty.
func (c *Client) NewRequest(ctx context.Context, method, path string, opts *RequestOptions) (*http.Request, error) {
	method = strings.ToUpper(method)
	if !slices.Contains(SupportedMethods, method) {
		return nil, &oaserrors.ConfigError{Option: "method", Value: method, Message: "unsupported HTTP method"}
	}
	if opts == nil {
		opts = &RequestOptions{}
	}

	u, err := c.URL(path, opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, opts.Body)
	if err != nil {
		return nil, fmt.Errorf("client: creating request: %w", err)
	}

	for name, values := range c.headers {
		req.Header[name] = slices.Clone(values)
	}
	for name, values := range opts.Headers {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if opts.Params != nil {
		if err := setHeaderParams(req.Header, opts.Params.Header); err != nil {
			return nil, err
		}
	}
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("built request", "method", method, "url", u, "headers", len(req.Header))
	return req, nil
}

// HeaderValues serializes header parameters in the simple style. Values that
// serialize to an empty string, absent ones included, are omitted.
func HeaderValues(params *serializer.Params) (http.Header, error) {
	h := make(http.Header)
	if err := setHeaderParams(h, params); err != nil {
		return nil, err
	}
	return h, nil
}

func setHeaderParams(h http.Header, params *serializer.Params) error {
	if params == nil {
		return nil
	}
	for pair := params.Oldest(); pair != nil; pair = pair.Next() {
		value, err := serializer.SerializeStyle(pair.Key, pair.Value, headerOptions)
		if err != nil {
			return fmt.Errorf("serializing header parameter %q: %w", pair.Key, err)
		}
		if value == "" {
			continue
		}
		h.Set(pair.Key, value)
	}
	return nil
}
