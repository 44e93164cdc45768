package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"github.com/reagent-ai/reagent/internal/schema"
	"github.com/reagent-ai/reagent/logging"
)

// Definition declaratively exposes a registered tool to the model.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON schema
}

// Registry maps tool names to invocable capabilities. Registration happens
// at setup time; after that the registry is read-only and safe for use by
// concurrent runs without additional synchronization.
type Registry struct {
	tools  map[string]Tool
	order  []string // Registration order, kept for stable Definitions output
	logger logging.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Registry{
		tools:  make(map[string]Tool),
		logger: opts.Logger,
	}
}

// RegistryOptions configures a Registry instance.
type RegistryOptions struct {
	Logger logging.Logger
}

// RegisterAll registers tools in order, stopping at the first failure. It is
// a setup-time helper; an error here should abort before any run starts.
func (r *Registry) RegisterAll(tools ...Tool) error {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Register adds a tool under its name. Registering a name twice fails with
// a DuplicateToolError.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return &DuplicateToolError{Name: name}
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the tool registered under name or an UnknownToolError.
func (r *Registry) Lookup(name string) (Tool, error) {
	t, exists := r.tools[name]
	if !exists {
		return nil, &UnknownToolError{Name: name}
	}
	return t, nil
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }

// Definitions returns the declarative tool list sent with model requests,
// in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, Definition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// Invoke looks up a tool by name, decodes and validates the raw JSON
// arguments against its schema, and executes it.
//
// Error Semantics:
//
//	unknown name            -> *UnknownToolError
//	undecodable arguments   -> *ExecutionError{Code: CodeArguments}
//	schema mismatch         -> *ExecutionError{Code: CodeValidation}
//	implementation failure  -> *ExecutionError{Code: CodeExecution}
//	(*ExecutionError returned by the tool itself is forwarded unchanged)
func (r *Registry) Invoke(ctx context.Context, name, rawArgs string) (any, error) {
	t, err := r.Lookup(name)
	if err != nil {
		r.logger.Warn("tool.invoke.unknown", "tool", name)
		return nil, err
	}

	args, err := DecodeArguments(rawArgs)
	if err != nil {
		r.logger.Warn("tool.invoke.bad_arguments", "tool", name, "error", err.Error())

		return nil, &ExecutionError{
			Tool:    name,
			Message: fmt.Sprintf("failed to decode arguments: %v", err),
			Code:    CodeArguments,
		}
	}

	if err := schema.Validate(args, t.Parameters()); err != nil {
		r.logger.Warn("tool.invoke.validation_failed", "tool", name, "error", err.Error())

		return nil, &ExecutionError{
			Tool:    name,
			Message: fmt.Sprintf("parameter validation failed: %v", err),
			Code:    CodeValidation,
			Details: err,
		}
	}

	start := time.Now()

	result, err := t.Call(ctx, args)
	if err != nil {
		if execErr, ok := err.(*ExecutionError); ok { // Already categorized -> just log and forward
			r.logger.Error("tool.invoke.error", "tool", name, "code", execErr.Code, "error", execErr.Message)
			return nil, execErr
		}

		r.logger.Error("tool.invoke.error", "tool", name, "error", err.Error())

		return nil, &ExecutionError{
			Tool:    name,
			Message: err.Error(),
			Code:    CodeExecution,
		}
	}

	r.logger.Info("tool.invoke.success", "tool", name, "duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// DecodeArguments parses a JSON argument payload into a map. Models
// occasionally emit malformed JSON (single quotes, trailing commas, bare
// keys); a repair pass is attempted before giving up. An empty payload
// decodes to an empty argument map.
func DecodeArguments(rawArgs string) (map[string]any, error) {
	if rawArgs == "" {
		return map[string]any{}, nil
	}

	args := make(map[string]any)
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(rawArgs)
		if repairErr != nil {
			return nil, fmt.Errorf("unmarshal arguments: %w (repair failed: %v)", err, repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &args); err != nil {
			return nil, fmt.Errorf("unmarshal repaired arguments: %w", err)
		}
	}

	return args, nil
}
