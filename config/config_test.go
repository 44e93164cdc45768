package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultSystemPrompt, cfg.SystemPrompt)
	assert.Equal(t, DefaultMaxSteps, cfg.MaxSteps)
}

func TestResolveOverrides(t *testing.T) {
	cfg, err := Resolve(map[string]any{
		"model":         "gpt-4o-mini",
		"system_prompt": "You are terse.",
		"max_steps":     3,
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "You are terse.", cfg.SystemPrompt)
	assert.Equal(t, 3, cfg.MaxSteps)
}

func TestResolveUnrecognizedOption(t *testing.T) {
	_, err := Resolve(map[string]any{"temperature": 0.5})
	require.Error(t, err)

	var optErr *UnrecognizedOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "temperature", optErr.Option)
}

func TestResolveTypeErrors(t *testing.T) {
	_, err := Resolve(map[string]any{"model": 42})
	assert.Error(t, err)

	_, err = Resolve(map[string]any{"max_steps": "six"})
	assert.Error(t, err)

	_, err = Resolve(map[string]any{"max_steps": 2.5})
	assert.Error(t, err)
}

func TestResolveMaxStepsMustBePositive(t *testing.T) {
	_, err := Resolve(map[string]any{"max_steps": 0})
	assert.Error(t, err)

	_, err = Resolve(map[string]any{"max_steps": -1})
	assert.Error(t, err)
}

func TestResolveAcceptsJSONNumbers(t *testing.T) {
	// Overrides decoded from JSON carry numbers as float64.
	cfg, err := Resolve(map[string]any{"max_steps": float64(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxSteps)
}

func TestResolveIdempotent(t *testing.T) {
	overrides := map[string]any{"model": "m", "max_steps": 2}

	first, err := Resolve(overrides)
	require.NoError(t, err)
	second, err := Resolve(overrides)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderSystemPrompt(t *testing.T) {
	cfg := Config{SystemPrompt: "Now: {{.system_time}}", MaxSteps: 1}

	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	rendered, err := cfg.RenderSystemPrompt(now)
	require.NoError(t, err)

	assert.Equal(t, "Now: 2025-03-14T09:26:53Z", rendered)
}

func TestRenderSystemPromptPlainPassthrough(t *testing.T) {
	cfg := Config{SystemPrompt: "No templates here.", MaxSteps: 1}

	rendered, err := cfg.RenderSystemPrompt(time.Now())
	require.NoError(t, err)
	assert.Equal(t, "No templates here.", rendered)
}
