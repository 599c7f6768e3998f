package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasurl/serializer"
)

type serializeParamInput struct {
	Name          string `json:"name"                     jsonschema:"Parameter name"`
	Value         any    `json:"value"                    jsonschema:"Value to serialize: primitive, array of primitives, or object of primitives"`
	Kind          string `json:"kind,omitempty"           jsonschema:"primitive, array or object. Inferred from value when empty"`
	Style         string `json:"style,omitempty"          jsonschema:"simple, label, matrix, form, deepObject, spaceDelimited or pipeDelimited (default form)"`
	Explode       bool   `json:"explode,omitempty"        jsonschema:"Explode arrays and objects into one fragment per member"`
	AllowReserved bool   `json:"allow_reserved,omitempty" jsonschema:"Keep reserved characters unencoded"`
}

type serializeParamOutput struct {
	Kind   string `json:"kind"`
	Style  string `json:"style"`
	Result string `json:"result"`
}

const (
	kindPrimitive = "primitive"
	kindArray     = "array"
	kindObject    = "object"
)

func handleSerializeParam(_ context.Context, _ *mcp.CallToolRequest, input serializeParamInput) (*mcp.CallToolResult, serializeParamOutput, error) {
	if input.Name == "" {
		return errResult(fmt.Errorf("name is required")), serializeParamOutput{}, nil
	}

	style := serializer.StyleForm
	if input.Style != "" {
		s, err := serializer.ParseStyle(input.Style)
		if err != nil {
			return errResult(err), serializeParamOutput{}, nil
		}
		style = s
	}
	opts := serializer.Options{Style: style, Explode: input.Explode, AllowReserved: input.AllowReserved}

	kind := input.Kind
	if kind == "" {
		kind = inferKind(input.Value)
	}

	var (
		result string
		err    error
	)
	switch kind {
	case kindPrimitive:
		result, err = serializer.SerializePrimitive(input.Name, input.Value, opts)
	case kindArray:
		result, err = serializer.SerializeArray(input.Name, input.Value, opts)
	case kindObject:
		result, err = serializer.SerializeObject(input.Name, input.Value, opts)
	default:
		err = fmt.Errorf("invalid kind %q; valid values: primitive, array, object", kind)
	}
	if err != nil {
		return errResult(err), serializeParamOutput{}, nil
	}

	return nil, serializeParamOutput{Kind: kind, Style: string(style), Result: result}, nil
}

// inferKind classifies a JSON-decoded value.
func inferKind(v any) string {
	switch v.(type) {
	case []any:
		return kindArray
	case map[string]any:
		return kindObject
	default:
		return kindPrimitive
	}
}
