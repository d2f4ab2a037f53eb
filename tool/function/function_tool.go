// Package function wraps plain Go functions as schema-validated tools.
package function

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tripweaver-ai/tripweaver/tool"
)

// FunctionTool implements tool.CallableTool over a typed function. Input and
// output schemas are generated from the type parameters; arguments are
// validated against the input schema before the function runs.
type FunctionTool[I, O any] struct {
	name        string
	description string
	declaration *tool.Declaration
	fn          func(context.Context, I) (O, error)
}

type options struct {
	name        string
	description string
}

// Option configures a FunctionTool.
type Option func(*options)

// WithName sets the tool's name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithDescription sets the natural-language description a model uses to
// decide when to invoke the tool.
func WithDescription(description string) Option {
	return func(o *options) { o.description = description }
}

// New creates a FunctionTool over fn.
func New[I, O any](fn func(context.Context, I) (O, error), opts ...Option) *FunctionTool[I, O] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var (
		emptyI I
		emptyO O
	)
	decl := &tool.Declaration{
		Name:         o.name,
		Description:  o.description,
		InputSchema:  tool.GenerateSchema(reflect.TypeOf(emptyI)),
		OutputSchema: tool.GenerateSchema(reflect.TypeOf(emptyO)),
	}
	return &FunctionTool[I, O]{
		name:        o.name,
		description: o.description,
		declaration: decl,
		fn:          fn,
	}
}

// Declaration implements the tool.Tool interface.
func (t *FunctionTool[I, O]) Declaration() *tool.Declaration {
	return t.declaration
}

// Call implements the tool.CallableTool interface. Arguments that fail
// schema validation never reach the wrapped function.
func (t *FunctionTool[I, O]) Call(ctx context.Context, jsonArgs []byte) (any, error) {
	if err := tool.ValidateInput(t.declaration, jsonArgs); err != nil {
		return nil, fmt.Errorf("tool %q: %w", t.name, err)
	}
	var input I
	if err := json.Unmarshal(jsonArgs, &input); err != nil {
		return nil, fmt.Errorf("tool %q: unmarshal arguments: %w", t.name, err)
	}
	return t.fn(ctx, input)
}
