// Package errors provides the error taxonomy for reader tool invocations.
// Every failure surfaced to the MCP host is a *ToolError with a Kind that
// determines its JSON-RPC code and whether the caller may retry.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an invocation failure.
type Kind int

const (
	KindUnknown           Kind = iota
	KindUnknownTool            // tool name is not registered
	KindInvalidArguments       // arguments failed validation, no request was sent
	KindUpstreamStatus         // reader service answered with a non-2xx status
	KindUpstreamTransport      // request never produced a usable response
)

// JSON-RPC 2.0 error codes used on the wire.
const (
	CodeMethodNotFound int64 = -32601
	CodeInvalidParams  int64 = -32602
	CodeInternalError  int64 = -32603
)

func (k Kind) String() string {
	switch k {
	case KindUnknownTool:
		return "unknown_tool"
	case KindInvalidArguments:
		return "invalid_arguments"
	case KindUpstreamStatus:
		return "upstream_status"
	case KindUpstreamTransport:
		return "upstream_transport"
	default:
		return "internal"
	}
}

// Code returns the JSON-RPC error code for the kind.
func (k Kind) Code() int64 {
	switch k {
	case KindUnknownTool:
		return CodeMethodNotFound
	case KindInvalidArguments:
		return CodeInvalidParams
	default:
		return CodeInternalError
	}
}

// Retryable reports whether repeating the same call may succeed.
// Caller mistakes are never retryable.
func (k Kind) Retryable() bool {
	return k == KindUpstreamStatus || k == KindUpstreamTransport
}

// ToolError is a classified invocation failure.
type ToolError struct {
	Kind       Kind
	Tool       string // tool name as requested
	StatusCode int    // upstream HTTP status, KindUpstreamStatus only
	Message    string // human-readable message sent to the host
	Err        error  // underlying cause, if any
}

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Code returns the JSON-RPC error code for the error.
func (e *ToolError) Code() int64 {
	return e.Kind.Code()
}

// NewUnknownToolError creates an error for an unregistered tool name.
func NewUnknownToolError(name string) *ToolError {
	return &ToolError{
		Kind:    KindUnknownTool,
		Tool:    name,
		Message: "Unknown tool: " + name,
	}
}

// NewInvalidArgumentsError wraps a validation failure for the given tool.
// A failure on the url field keeps the short message hosts already match on.
func NewInvalidArgumentsError(tool string, cause *ValidationError) *ToolError {
	msg := "Invalid arguments: " + cause.Error()
	if cause.Field == "url" {
		msg = "Invalid or missing URL parameter"
	}
	return &ToolError{
		Kind:    KindInvalidArguments,
		Tool:    tool,
		Message: msg,
		Err:     cause,
	}
}

// NewUpstreamStatusError creates an error for a non-2xx reader response.
func NewUpstreamStatusError(tool string, statusCode int) *ToolError {
	return &ToolError{
		Kind:       KindUpstreamStatus,
		Tool:       tool,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("Failed to process URL: HTTP error! status: %d", statusCode),
	}
}

// NewUpstreamTransportError wraps a network, DNS, timeout, or body read failure.
func NewUpstreamTransportError(tool string, cause error) *ToolError {
	return &ToolError{
		Kind:    KindUpstreamTransport,
		Tool:    tool,
		Message: "Failed to process URL: " + cause.Error(),
		Err:     cause,
	}
}

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value (may be empty)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// KindOf returns the kind of the first ToolError in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) Kind {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

// IsUnknownTool returns true if err is an unknown tool failure.
func IsUnknownTool(err error) bool {
	return KindOf(err) == KindUnknownTool
}

// IsInvalidArguments returns true if err is an argument validation failure.
func IsInvalidArguments(err error) bool {
	return KindOf(err) == KindInvalidArguments
}

// IsUpstream returns true if err came from the reader service call.
func IsUpstream(err error) bool {
	k := KindOf(err)
	return k == KindUpstreamStatus || k == KindUpstreamTransport
}
