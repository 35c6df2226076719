// Package tools provides a metadata-driven registry for MCP tool definitions
// and the gateway that routes tool calls to the reader client.
package tools

import "github.com/google/jsonschema-go/jsonschema"

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a gateway method that decodes its own arguments.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "read_url")
	Name string

	// Method is the gateway method name (e.g., "ReadURL")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically
	Category string

	// Schema builds the JSON Schema for the tool's arguments
	Schema func() *jsonschema.Schema

	// ReadOnly indicates the tool doesn't modify any state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
