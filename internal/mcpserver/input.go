package mcpserver

import (
	"fmt"

	"github.com/erraggy/oasurl/internal/paramfile"
)

// requestInput represents the two ways a request description can be
// provided to a tool. At most one of File or Content may be set.
type requestInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a YAML or JSON request file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline request description (JSON or YAML) with base_url, path, params and query_serializer keys"`
}

func (r *requestInput) isSet() bool {
	return r != nil && (r.File != "" || r.Content != "")
}

// resolve loads the request description. It returns nil when nothing is set.
func (r *requestInput) resolve() (*paramfile.Request, error) {
	if !r.isSet() {
		return nil, nil
	}
	if r.File != "" && r.Content != "" {
		return nil, fmt.Errorf("set only one of request.file or request.content")
	}
	if r.File != "" {
		return paramfile.Load(r.File)
	}
	return paramfile.Parse([]byte(r.Content))
}
