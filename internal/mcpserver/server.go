// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasurl capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasurl"
	"github.com/erraggy/oasurl/serializer"
)

const serverInstructions = `oasurl MCP server: builds request URLs from OpenAPI path templates and serializes parameters using OpenAPI 3.x style/explode rules.

Configuration: defaults come from OASURL_* environment variables set in your MCP client config.

Key settings:
- OASURL_BASE_URL: base URL prepended to every path
- OASURL_ARRAY_STYLE (default: form), OASURL_ARRAY_EXPLODE (default: true)
- OASURL_OBJECT_STYLE (default: deepObject), OASURL_OBJECT_EXPLODE (default: true)
- OASURL_ALLOW_RESERVED (default: false): skip percent-encoding of query values
- OASURL_STRICT_PATH_PARAMS (default: false): fail on unresolved path tokens

Parameters are passed as ordered lists of {name, value} so query order is kept. Nested arrays or objects inside a value are rejected.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasurl", Version: oasurl.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_url",
		Description: "Build a final request URL from a path template such as /pets/{id} or /items/{;ids*}, path parameters, and query parameters. Path tokens support the simple ({name}), label ({.name}) and matrix ({;name}) styles, with * for explode. Query arrays and objects follow array_style/object_style. A request file or inline YAML/JSON request description may be given instead of individual fields. Returns the URL, serialized header parameters, and any path tokens left unresolved.",
	}, handleBuildURL)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "serialize_param",
		Description: "Serialize a single parameter value with an OpenAPI style (simple, label, matrix, form, deepObject, spaceDelimited, pipeDelimited) and explode flag. The value kind (primitive, array, object) is inferred unless kind is set.",
	}, handleSerializeParam)
}

// paramInput is one named parameter. Lists of these keep caller order.
type paramInput struct {
	Name  string `json:"name"  jsonschema:"Parameter name"`
	Value any    `json:"value" jsonschema:"Parameter value: string, number, boolean, array of those, or an object of those. null means absent"`
}

// toParams converts an ordered parameter list. Later duplicates replace the
// value but keep the first position.
func toParams(location string, in []paramInput) (*serializer.Params, error) {
	if len(in) == 0 {
		return nil, nil
	}
	p := serializer.NewParams()
	for i, param := range in {
		if param.Name == "" {
			return nil, fmt.Errorf("%s parameter %d has an empty name", location, i)
		}
		p.Set(param.Name, param.Value)
	}
	return p, nil
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
