// Package tool exposes data-producing capabilities as named, schema-validated,
// independently invocable operations, usable both by direct orchestration code
// and by a model performing autonomous tool selection.
package tool

import (
	"context"
)

// Tool describes a capability by its declaration.
type Tool interface {
	// Declaration returns the metadata describing the tool.
	Declaration() *Declaration
}

// CallableTool is a tool that can be invoked with JSON-encoded arguments.
// Implementations validate the arguments against the declared input schema
// before executing.
type CallableTool interface {
	// Call invokes the tool. Returns the result of execution or an error if
	// the arguments are invalid or the operation fails.
	Call(ctx context.Context, jsonArgs []byte) (any, error)

	Tool
}

// Declaration describes the metadata of a tool: its name, the natural
// language description a model uses to decide when to invoke it, and the
// schemas of its arguments and result.
type Declaration struct {
	// Name is the unique identifier of the tool.
	Name string `json:"name"`

	// Description explains the tool's purpose and functionality.
	Description string `json:"description"`

	// InputSchema defines the expected input in JSON schema form.
	InputSchema *Schema `json:"inputSchema"`

	// OutputSchema defines the expected output in JSON schema form.
	OutputSchema *Schema `json:"outputSchema,omitempty"`
}

// Schema is the subset of JSON Schema used to declare tool arguments,
// results, and structured model output.
type Schema struct {
	// Type specifies the data type, e.g. "object", "array", "string".
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object schema, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items is the element schema of an array type.
	Items *Schema `json:"items,omitempty"`
	// Enum restricts a value to a fixed set.
	Enum []any `json:"enum,omitempty"`
	// AdditionalProperties controls whether undeclared properties are allowed.
	AdditionalProperties any `json:"additionalProperties,omitempty"`
}
