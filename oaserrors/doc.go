// Package oaserrors provides structured error types for the oasurl library.
//
// Import path: github.com/erraggy/oasurl/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish a caller-side contract violation (a value
// that cannot be serialized) from configuration mistakes and missing inputs.
//
// # Error Types
//
//   - [UnsupportedValueError]: a composite value where a scalar is required
//     (deeply-nested arrays or objects)
//   - [MissingParamError]: template parameters with no value (strict mode only)
//   - [ConfigError]: invalid styles, methods, or option values
//
// # Sentinel Errors
//
//   - [ErrUnsupportedValue]: Matches any [UnsupportedValueError]
//   - [ErrMissingParam]: Matches any [MissingParamError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	query, err := serializer.DefaultQuerySerializer(params)
//	if errors.Is(err, oaserrors.ErrUnsupportedValue) {
//	    // Fall back to a custom serializer for nested structures
//	}
//
// Extract error details with errors.As():
//
//	var missing *oaserrors.MissingParamError
//	if errors.As(err, &missing) {
//	    fmt.Printf("missing: %v\n", missing.Names)
//	}
//
// # Leniency
//
// Absent values (nil, nil pointers, empty arrays in queries) are never errors:
// the corresponding fragment is simply omitted. Every error in this package is
// deterministic, so retrying with the same input reproduces it.
package oaserrors
