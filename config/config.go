// Package config resolves the caller-visible configuration surface of an
// agent run: model identifier, system prompt template and step limit. Every
// recognized option is enumerated with an explicit default; unknown option
// names fail at resolve time, before any run starts.
package config

import (
	"fmt"
	"time"

	"github.com/reagent-ai/reagent/internal/prompt"
)

// Option names accepted by Resolve.
const (
	OptionModel        = "model"
	OptionSystemPrompt = "system_prompt"
	OptionMaxSteps     = "max_steps"
)

// Defaults applied for options the caller does not override.
const (
	// DefaultModel is the model identifier used when none is configured.
	DefaultModel = "claude-3-5-sonnet-20240620"

	// DefaultSystemPrompt exposes a system_time template variable rendered
	// at each model invocation.
	DefaultSystemPrompt = "You are a helpful AI assistant.\nSystem time: {{.system_time}}"

	// DefaultMaxSteps bounds the number of model invocations per run.
	DefaultMaxSteps = 6
)

// UnrecognizedOptionError reports an override key that names no known option.
type UnrecognizedOptionError struct {
	Option string
}

// Error implements the error interface.
func (e *UnrecognizedOptionError) Error() string {
	return fmt.Sprintf("unrecognized configuration option %q", e.Option)
}

// Config is the immutable per-run configuration. It is a value type: copies
// are independent and no field is mutated after Resolve returns.
type Config struct {
	// Model is the provider-specific model identifier.
	Model string

	// SystemPrompt is the instruction template sent with every model call.
	// It may reference {{.system_time}}, filled with the current UTC time.
	SystemPrompt string

	// MaxSteps caps model invocations per run. Always positive.
	MaxSteps int
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Model:        DefaultModel,
		SystemPrompt: DefaultSystemPrompt,
		MaxSteps:     DefaultMaxSteps,
	}
}

// Resolve merges caller overrides onto the defaults. Unknown keys fail with
// an UnrecognizedOptionError; wrong-typed values or a non-positive step limit
// fail with a descriptive error. Resolve has no side effects and is
// idempotent: equal overrides always yield equal Config values.
func Resolve(overrides map[string]any) (Config, error) {
	cfg := Default()

	for key, value := range overrides {
		switch key {
		case OptionModel:
			s, ok := value.(string)
			if !ok {
				return Config{}, fmt.Errorf("option %q: expected string, got %T", key, value)
			}
			cfg.Model = s
		case OptionSystemPrompt:
			s, ok := value.(string)
			if !ok {
				return Config{}, fmt.Errorf("option %q: expected string, got %T", key, value)
			}
			cfg.SystemPrompt = s
		case OptionMaxSteps:
			n, err := asInt(value)
			if err != nil {
				return Config{}, fmt.Errorf("option %q: %w", key, err)
			}
			if n <= 0 {
				return Config{}, fmt.Errorf("option %q: must be positive, got %d", key, n)
			}
			cfg.MaxSteps = n
		default:
			return Config{}, &UnrecognizedOptionError{Option: key}
		}
	}

	return cfg, nil
}

// RenderSystemPrompt fills the prompt template for a model invocation at the
// given time. The time is normalized to UTC RFC 3339.
func (c Config) RenderSystemPrompt(now time.Time) (string, error) {
	return prompt.Render(c.SystemPrompt, map[string]any{
		"system_time": now.UTC().Format(time.RFC3339),
	})
}

// asInt accepts native ints plus float64, the type JSON decoding produces
// for numbers in loosely-typed override maps.
func asInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("expected integer, got %v", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", value)
	}
}
