package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/reagent-ai/reagent/conversation"
	"github.com/reagent-ai/reagent/tool"
)

// Request captures the normalized model input produced by the agent loop.
type Request struct {
	Instructions string                 `json:"instructions"` // System prompt for the model
	Messages     []conversation.Message `json:"messages"`     // Ordered conversation history
	Tools        []tool.Definition      `json:"tools,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the model's answer for one invocation: either plain content,
// one or more tool-call requests, or both. ToolCalls preserve the order the
// model emitted them.
type Response struct {
	Content    string                  `json:"content,omitempty"`
	ToolCalls  []conversation.ToolCall `json:"tool_calls,omitempty"`
	StopReason string                  `json:"stop_reason,omitempty"` // "stop", "length", "tool_calls", etc.
	Usage      *TokenUsage             `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "scripted", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface the agent loop requires to drive
// generation. Generate blocks until the provider answers or ctx is done;
// retry and streaming behavior belong to provider implementations.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// ScriptedModel is a lightweight in-memory Model useful for tests and
// examples. It replays a fixed response sequence and records every request
// it receives.
type ScriptedModel struct {
	mu        sync.Mutex
	info      Info
	responses []Response
	err       error
	next      int
	requests  []Request
}

// NewScriptedModel constructs a ScriptedModel that replays responses in order.
// Once the script is exhausted the last response is repeated.
func NewScriptedModel(responses ...Response) *ScriptedModel {
	return &ScriptedModel{
		info: Info{
			Name:          "scripted",
			Provider:      "scripted",
			SupportsTools: true,
		},
		responses: responses,
	}
}

// FailWith makes every subsequent Generate call return err.
func (m *ScriptedModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Generate implements Model by replaying the scripted responses.
func (m *ScriptedModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("scripted model has no responses")
	}

	resp := m.responses[m.next]
	if m.next < len(m.responses)-1 {
		m.next++
	}

	return &resp, nil
}

// Requests returns a copy of the requests received so far.
func (m *ScriptedModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	reqs := make([]Request, len(m.requests))
	copy(reqs, m.requests)
	return reqs
}

// Calls returns how many times Generate has been invoked.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Info implements the Model interface.
func (m *ScriptedModel) Info() Info { return m.info }
