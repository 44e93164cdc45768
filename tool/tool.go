// Package tool implements the function / tool calling subsystem that lets the
// agent invoke structured capabilities (APIs, computations, side-effects)
// with schema validated arguments and consistent error handling.
package tool

import (
	"context"
	"fmt"

	"github.com/reagent-ai/reagent/internal/schema"
)

// Tool is an invocable capability exposed to the model.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case recommended) and descriptions
//   - Define a proper JSON schema for parameters
//   - Be safe for concurrent use across independent runs
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does. It is provided to the model to guide tool selection.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool with already-validated arguments. The context
	// carries cancellation from the hosting run.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ValidationError reports a schema / argument mismatch.
type ValidationError = schema.ValidationError

// DuplicateToolError reports an attempt to register a name twice.
type DuplicateToolError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q is already registered", e.Name)
}

// UnknownToolError reports a lookup of an unregistered tool name.
type UnknownToolError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// Error codes attached to ExecutionError for categorization.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeArguments  = "ARGUMENT_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
)

// ExecutionError wraps failures raised during tool invocation. The agent
// loop treats these as recoverable: they are folded into a tool-result
// message so the model can observe the failure and react.
type ExecutionError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewExecutionError creates an ExecutionError with the specified details.
func NewExecutionError(tool, message, code string) *ExecutionError {
	return &ExecutionError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
