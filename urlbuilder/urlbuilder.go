package urlbuilder

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasurl/serializer"
)

// RequestParams groups the parameters of one request by location.
type RequestParams struct {
	Path   *serializer.Params
	Query  *serializer.Params
	Header *serializer.Params
}

// Options describes the URL to build.
type Options struct {
	// BaseURL is prepended to the pathname without inserting a separator.
	BaseURL string
	// Params holds path and query parameters. Header parameters are ignored here.
	Params *RequestParams
	// QuerySerializer renders Params.Query. nil uses serializer.DefaultQuerySerializer.
	QuerySerializer serializer.QuerySerializer
}

// Build returns BaseURL + pathname with path parameters substituted and the
// serialized query appended. Path tokens without a matching parameter are
// left in place. The query is only appended when it is non-empty.
func Build(pathname string, opts Options) (string, error) {
	finalURL := opts.BaseURL + pathname

	var path, query *serializer.Params
	if opts.Params != nil {
		path = opts.Params.Path
		query = opts.Params.Query
	}

	if path != nil {
		var err error
		finalURL, err = serializer.SerializePath(finalURL, path)
		if err != nil {
			return "", err
		}
	}

	qs := opts.QuerySerializer
	if qs == nil {
		qs = serializer.DefaultQuerySerializer
	}
	if query == nil {
		query = serializer.NewParams()
	}
	search, err := qs(query)
	if err != nil {
		return "", fmt.Errorf("building query string: %w", err)
	}
	search = strings.TrimPrefix(search, "?")
	if search != "" {
		finalURL += "?" + search
	}
	return finalURL, nil
}

// RemoveTrailingSlash strips a single trailing "/" from u.
func RemoveTrailingSlash(u string) string {
	return strings.TrimSuffix(u, "/")
}
