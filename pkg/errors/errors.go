// Package errors provides structured error handling for clock rendering.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid configuration value.
	KindConfig
	// KindParsing indicates an attribute or file parsing failure.
	KindParsing
	// KindRender indicates a drawing error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindParsing:
		return "parsing"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ClockError represents a structured error raised while configuring or
// drawing a clock face.
type ClockError struct {
	// Op is the operation that failed (e.g., "animation.PauseAtEnd").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Attribute is the configuration attribute name, if applicable.
	Attribute string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ClockError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("%s [%s] attribute=%s: %v", e.Op, e.Kind, e.Attribute, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.frame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a value that could not be converted to the
// type an attribute expects.
type ParseError struct {
	// DataType is the expected type name.
	DataType string
	// Got is the raw value received.
	Got string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: got %q", e.DataType, e.Got)
}

// ErrorHandler receives errors reported by the renderer and frame loop.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ClockError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
