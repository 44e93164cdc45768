package tool

import (
	"context"

	"github.com/reagent-ai/reagent/internal/schema"
)

// Func is a generic adapter that exposes a plain Go function as a Tool.
//
// It holds a lightweight JSON-Schema-like parameter specification used by the
// registry to validate model supplied arguments before execution. A Func has
// no internal mutable state after construction and is safe for concurrent
// use by multiple goroutines.
type Func struct {
	// Tool identifier (snake_case recommended)
	name string
	// Human-readable description shown to models
	description string
	// JSON schema describing accepted arguments
	parameters map[string]any
	// User supplied implementation
	fn func(ctx context.Context, args map[string]any) (any, error)
}

// NewFunc constructs a Func tool from an explicit schema and function.
//
// Example:
//
//	sum := NewFunc(
//	  "calculate_sum",
//	  "Calculate the sum of two numbers",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "a": map[string]any{"type": "number"},
//	      "b": map[string]any{"type": "number"},
//	    },
//	    "required": []string{"a", "b"},
//	  },
//	  func(_ context.Context, args map[string]any) (any, error) {
//	    return args["a"].(float64) + args["b"].(float64), nil
//	  },
//	)
func NewFunc(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *Func {
	return &Func{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// NewFuncFromStruct derives the parameter schema from a struct via
// reflection. It is a convenience for simple argument containers.
//
// Example:
//
//	type SumArgs struct {
//	  A float64 `json:"a" description:"First addend"`
//	  B float64 `json:"b" description:"Second addend"`
//	}
//
//	sum := NewFuncFromStruct("calculate_sum", "Calculate the sum of two numbers", SumArgs{}, fn)
func NewFuncFromStruct(
	name, description string,
	structType any,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *Func {
	return NewFunc(name, description, schema.FromStruct(structType), fn)
}

// Name returns the unique tool name used in tool-call requests and routing.
func (t *Func) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *Func) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *Func) Parameters() map[string]any { return t.parameters }

// Call invokes the wrapped function. Argument validation happens in the
// registry before dispatch reaches this point.
func (t *Func) Call(ctx context.Context, args map[string]any) (any, error) {
	return t.fn(ctx, args)
}
