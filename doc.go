// Package oasurl builds request URLs from OpenAPI path templates and
// parameters, following the OpenAPI 3.x parameter serialization rules.
//
// # Overview
//
// The module is split into small packages:
//
//   - serializer: style/explode serialization of primitives, arrays and
//     objects into path segments and query strings
//   - urlbuilder: joins a base URL, a path template and serialized
//     parameters into the final URL
//   - client: holds client-wide defaults and turns a path plus parameters
//     into a ready-to-send *http.Request
//   - oaserrors: typed errors shared by every package
//
// Supported serialization styles are those of OpenAPI 3.x:
// https://spec.openapis.org/oas/v3.1.0.html#style-values
//
// # Installation
//
//	go get github.com/erraggy/oasurl
//
// The command-line tool is installed with:
//
//	go install github.com/erraggy/oasurl/cmd/oasurl@latest
//
// # Quick Start
//
// Build a URL directly:
//
//	u, err := urlbuilder.Build("/pets/{id}", urlbuilder.Options{
//		BaseURL: "https://api.example.com",
//		Params: &urlbuilder.RequestParams{
//			Path:  serializer.NewParams("id", 42),
//			Query: serializer.NewParams("tags", []string{"a", "b"}, "limit", 10),
//		},
//	})
//	// https://api.example.com/pets/42?tags=a&tags=b&limit=10
//
// Or configure a client once and build requests from it:
//
//	c, err := client.New(client.WithBaseURL("https://api.example.com/"))
//	req, err := c.NewRequest(ctx, http.MethodGet, "/pets/{id}", &client.RequestOptions{
//		Params: &urlbuilder.RequestParams{Path: serializer.NewParams("id", 42)},
//	})
//
// Nested arrays and objects inside parameters are not supported; they fail
// with [oaserrors.ErrUnsupportedValue].
package oasurl
