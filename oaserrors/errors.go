package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrUnsupportedValue indicates a value whose shape cannot be serialized,
	// such as an object nested inside an array.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrMissingParam indicates a required parameter had no value.
	ErrMissingParam = errors.New("missing parameter")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// UnsupportedValueError reports a value that must be scalar but is an
// array, object, or other composite. Deeply-nested parameters need a
// caller-supplied serializer.
type UnsupportedValueError struct {
	// Name is the parameter (or member) name being serialized
	Name string
	// Value is the offending value
	Value any
	// Message describes the failure
	Message string
}

// Error returns a human-readable error message.
func (e *UnsupportedValueError) Error() string {
	msg := "unsupported value"
	if e.Name != "" {
		msg += " for " + e.Name
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (type: %T)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as UnsupportedValueError has no underlying cause.
func (e *UnsupportedValueError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *UnsupportedValueError) Is(target error) bool {
	return target == ErrUnsupportedValue
}

// MissingParamError reports parameters that a template references but the
// caller did not provide.
type MissingParamError struct {
	// Location is the parameter location: "path", "query", or "header"
	Location string
	// Names lists the missing parameter names in template order
	Names []string
	// Template is the template that referenced them, if known
	Template string
}

// Error returns a human-readable error message.
func (e *MissingParamError) Error() string {
	msg := "missing parameter"
	if len(e.Names) > 1 {
		msg += "s"
	}
	if e.Location != "" {
		msg = e.Location + " " + msg
	}
	if len(e.Names) > 0 {
		msg += ": " + strings.Join(e.Names, ", ")
	}
	if e.Template != "" {
		msg += " in " + e.Template
	}
	return msg
}

// Unwrap returns nil as MissingParamError has no underlying cause.
func (e *MissingParamError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *MissingParamError) Is(target error) bool {
	return target == ErrMissingParam
}

// ConfigError represents an invalid configuration or input.
// This includes unknown serialization styles, styles that do not apply to
// a value kind, and malformed option values.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
