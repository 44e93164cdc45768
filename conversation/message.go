package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks input supplied by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks model output, optionally carrying tool calls.
	RoleAssistant Role = "assistant"
	// RoleTool marks the result of a tool invocation.
	RoleTool Role = "tool"
)

// ToolCall is a structured request emitted by the model naming a tool and
// the JSON-serialized arguments to invoke it with.
type ToolCall struct {
	ID        string `json:"id,omitempty"` // Provider-assigned call id (correlates result to request)
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"` // Raw JSON argument payload
}

// Message is a single conversation turn. Sequence order is conversation
// chronology; messages are never edited after construction.
type Message struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Content   string     `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"` // Assistant turns only, in emitted order
	Timestamp time.Time  `json:"timestamp"`

	// Tool-result fields, set only for RoleTool messages.
	ToolCallID string `json:"tool_call_id,omitempty"` // Matches the originating ToolCall.ID
	ToolName   string `json:"tool_name,omitempty"`
	IsError    bool   `json:"is_error,omitempty"` // Result content describes a tool failure
}

// NewID generates a unique identifier for messages.
func NewID() string { return uuid.NewString() }

func newMessage(role Role) Message {
	return Message{
		ID:        NewID(),
		Role:      role,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserMessage creates a user-authored text turn.
func NewUserMessage(content string) Message {
	m := newMessage(RoleUser)
	m.Content = content
	return m
}

// NewAssistantMessage creates an assistant turn with optional tool calls.
// The tool call slice order is preserved as emitted by the model.
func NewAssistantMessage(content string, toolCalls []ToolCall) Message {
	m := newMessage(RoleAssistant)
	m.Content = content
	m.ToolCalls = toolCalls
	return m
}

// NewToolResultMessage records the successful outcome of a tool call.
func NewToolResultMessage(callID, toolName, content string) Message {
	m := newMessage(RoleTool)
	m.ToolCallID = callID
	m.ToolName = toolName
	m.Content = content
	return m
}

// NewToolErrorMessage records a failed tool call. The error text is carried
// as ordinary content so the model can observe it and react on its next turn.
func NewToolErrorMessage(callID, toolName string, err error) Message {
	m := newMessage(RoleTool)
	m.ToolCallID = callID
	m.ToolName = toolName
	m.Content = err.Error()
	m.IsError = true
	return m
}

// HasToolCalls reports whether this turn requests any tool invocations.
func (m Message) HasToolCalls() bool { return len(m.ToolCalls) > 0 }
