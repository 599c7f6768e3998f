// Package client holds client-wide URL defaults and turns a path template
// plus parameters into URLs and ready-to-send *http.Request values.
//
// A Client never sends requests. Hand the result of [Client.NewRequest] to
// any *http.Client.
//
// # Configuration
//
// Options are layered, lowest precedence first:
//
//  1. [DefaultOptions]
//  2. [Options] passed through [WithOptions]
//  3. individual With* options such as [WithBaseURL]
//
// The base URL has a single trailing "/" removed so that paths starting
// with "/" join cleanly.
//
// # Per-request overrides
//
// [RequestOptions] may override the base URL and the query serializer for one
// call. Header parameters are serialized in the simple style with reserved
// characters kept as-is and set on the request after any explicit headers.
//
// # Strict path parameters
//
// By default a path token without a matching parameter is left in the URL
// verbatim, for example "/pets/{id}". [WithStrictPathParams] turns that into
// an [oaserrors.MissingParamError].
//
// # Concurrency
//
// A Client is immutable after [New] and safe for concurrent use.
package client
