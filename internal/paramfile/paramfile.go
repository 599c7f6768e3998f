// Package paramfile loads request descriptions from YAML or JSON files.
//
// A request file looks like:
//
//	base_url: https://api.example.com
//	path: /pets/{id}
//	method: GET
//	params:
//	  path:
//	    id: 42
//	  query:
//	    tags: [a, b]
//	    limit: 10
//	  header:
//	    X-Request-Id: abc
//	query_serializer:
//	  array:
//	    style: pipeDelimited
//	    explode: false
//
// Mapping order is preserved so query parameters serialize in file order.
// String keys and values are normalized to Unicode NFC.
package paramfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"go.yaml.in/yaml/v4"
	"golang.org/x/text/unicode/norm"

	"github.com/erraggy/oasurl/oaserrors"
	"github.com/erraggy/oasurl/serializer"
	"github.com/erraggy/oasurl/urlbuilder"
)

// Request is a request description read from a file.
type Request struct {
	BaseURL         string
	Path            string
	Method          string
	Params          *urlbuilder.RequestParams
	QuerySerializer *serializer.QueryConfig
}

// Load reads a request file from disk. A path of "-" reads standard input.
func Load(path string) (*Request, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("paramfile: reading %s: %w", path, err)
	}
	req, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// Read parses a request description from r.
func Read(r io.Reader) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("paramfile: reading input: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML or JSON request description. Empty input yields an
// empty Request.
func Parse(data []byte) (*Request, error) {
	req := &Request{}
	if len(bytes.TrimSpace(data)) == 0 {
		return req, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("paramfile: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return req, nil
		}
		root = root.Content[0]
	}
	if isNull(root) {
		return req, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, nodeError(root, "request must be a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		var err error
		switch keyNode.Value {
		case "base_url":
			req.BaseURL, err = stringValue(valNode)
		case "path":
			req.Path, err = stringValue(valNode)
		case "method":
			req.Method, err = stringValue(valNode)
		case "params":
			req.Params, err = decodeRequestParams(valNode)
		case "query_serializer":
			req.QuerySerializer, err = decodeQueryConfig(valNode)
		default:
			err = nodeError(keyNode, fmt.Sprintf("unknown key %q", keyNode.Value))
		}
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}

func decodeRequestParams(node *yaml.Node) (*urlbuilder.RequestParams, error) {
	node = resolveAlias(node)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(node, "params must be a mapping")
	}

	params := &urlbuilder.RequestParams{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		p, err := decodeParams(valNode, "params."+keyNode.Value)
		if err != nil {
			return nil, err
		}
		switch keyNode.Value {
		case "path":
			params.Path = p
		case "query":
			params.Query = p
		case "header":
			params.Header = p
		default:
			return nil, nodeError(keyNode, fmt.Sprintf("unknown parameter location %q", keyNode.Value))
		}
	}
	return params, nil
}

// decodeParams converts a mapping node into ordered Params.
func decodeParams(node *yaml.Node, where string) (*serializer.Params, error) {
	node = resolveAlias(node)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeError(node, where+" must be a mapping")
	}
	v, err := nodeValue(node)
	if err != nil {
		return nil, err
	}
	return v.(*serializer.Params), nil
}

// nodeValue converts a node into a parameter value: mappings become
// *serializer.Params, sequences []any, scalars their natural Go type.
func nodeValue(node *yaml.Node) (any, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		p := serializer.NewParams()
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			p.Set(norm.NFC.String(node.Content[i].Value), v)
		}
		return p, nil

	case yaml.SequenceNode:
		values := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := nodeValue(child)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil

	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, nodeError(node, err.Error())
		}
		if s, ok := v.(string); ok {
			return norm.NFC.String(s), nil
		}
		return v, nil

	default:
		return nil, nodeError(node, "unsupported YAML node")
	}
}

func stringValue(node *yaml.Node) (string, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.ScalarNode {
		return "", nodeError(node, "expected a string")
	}
	if isNull(node) {
		return "", nil
	}
	return norm.NFC.String(node.Value), nil
}

var styleType = reflect.TypeOf(serializer.Style(""))

// styleHook validates style names while decoding.
func styleHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != styleType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	return serializer.ParseStyle(s)
}

func decodeQueryConfig(node *yaml.Node) (*serializer.QueryConfig, error) {
	node = resolveAlias(node)
	if isNull(node) {
		return nil, nil
	}

	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return nil, nodeError(node, "query_serializer must be a mapping")
	}

	cfg := &serializer.QueryConfig{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.DecodeHookFuncType(styleHook),
		Result:           cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("paramfile: creating decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, &oaserrors.ConfigError{
			Option:  "query_serializer",
			Message: fmt.Sprintf("line %d: invalid configuration", node.Line),
			Cause:   err,
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func nodeError(node *yaml.Node, msg string) error {
	return fmt.Errorf("paramfile: line %d, column %d: %s", node.Line, node.Column, msg)
}
