package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reagent-ai/reagent/conversation"
	"github.com/reagent-ai/reagent/model"
)

// Result is the outcome of one decision-loop run.
type Result struct {
	// State is the conversation after the run, including every message
	// appended along the way. On failure it holds the partial history.
	State *conversation.State

	// FinalText is the assistant's answer when the run finished normally.
	FinalText string

	// Truncated is set when the run stopped at the step limit instead of
	// producing a final answer. This is a reported condition, not an error.
	Truncated bool

	// Cancelled is set when the caller's context ended the run early.
	Cancelled bool

	// Steps is the number of model invocations the run consumed.
	Steps int
}

// Run drives the conversation to completion. Starting from the given state,
// it alternates model invocations with ordered tool executions until the
// model answers without tool calls, the step limit is reached, or the
// context is cancelled.
//
// The state must be exclusively owned by this run. Messages are only ever
// appended; tool results land in the exact order the model requested them.
//
// Error semantics:
//   - provider failure  -> *ModelInvocationError plus the partial Result
//   - cancellation      -> ctx error plus the partial Result, state tagged cancelled
//   - tool failures     -> never an error: folded into tool-result messages
//     so the model can observe them on its next turn
func (a *Agent) Run(ctx context.Context, state *conversation.State) (*Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return a.cancelled(state), err
		}

		resp, err := a.invokeModel(ctx, state)
		if err != nil {
			if ctx.Err() != nil {
				return a.cancelled(state), ctx.Err()
			}
			return &Result{State: state, Steps: state.Steps()}, err
		}

		state.IncrementStep()
		state.Append(conversation.NewAssistantMessage(resp.Content, resp.ToolCalls))

		if len(resp.ToolCalls) == 0 {
			a.logger.Info("agent.run.done", "steps", state.Steps(), "turns", state.Len())

			return &Result{
				State:     state,
				FinalText: resp.Content,
				Steps:     state.Steps(),
			}, nil
		}

		// Completing this round needs one more model invocation. Stop here
		// if that would exceed the step limit: the pending tool calls are
		// not executed and the state is returned as-is, flagged truncated.
		if state.Steps()+1 > a.cfg.MaxSteps {
			state.MarkTruncated()

			a.logger.Warn("agent.run.step_limit",
				"max_steps", a.cfg.MaxSteps,
				"pending_tool_calls", len(resp.ToolCalls),
			)

			return &Result{
				State:     state,
				Truncated: true,
				Steps:     state.Steps(),
			}, nil
		}

		if err := a.executeToolRound(ctx, state, resp.ToolCalls); err != nil {
			return a.cancelled(state), err
		}
	}
}

// invokeModel renders the system prompt and issues one model call with the
// full conversation history and the registered tool definitions.
func (a *Agent) invokeModel(ctx context.Context, state *conversation.State) (*model.Response, error) {
	instructions, err := a.cfg.RenderSystemPrompt(a.now())
	if err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}

	req := model.Request{
		Instructions: instructions,
		Messages:     state.Messages(),
		Tools:        a.registry.Definitions(),
	}

	start := time.Now()

	resp, err := a.llm.Generate(ctx, req)
	if err != nil {
		a.logger.Error("agent.model.error", "model", a.llm.Info().Name, "error", err.Error())
		return nil, &ModelInvocationError{Model: a.llm.Info().Name, Err: err}
	}

	tokens := 0
	if resp.Usage != nil {
		tokens = resp.Usage.TotalTokens
	}

	a.logger.Debug("agent.model.response",
		"model", a.llm.Info().Name,
		"duration_ms", time.Since(start).Milliseconds(),
		"tokens", tokens,
		"tool_calls", len(resp.ToolCalls),
	)

	return resp, nil
}

// executeToolRound runs every requested tool sequentially, in the order the
// model emitted the calls, appending exactly one tool-result message per
// call. Lookup, validation and execution failures are recorded as
// error-flagged results rather than aborting the run. The returned error is
// non-nil only on cancellation.
func (a *Agent) executeToolRound(ctx context.Context, state *conversation.State, calls []conversation.ToolCall) error {
	for _, call := range calls {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := a.registry.Invoke(ctx, call.Name, call.Arguments)
		if err != nil {
			if ctx.Err() != nil {
				// Resolve the interrupted call before stopping so no request
				// is left without a recorded outcome.
				state.Append(conversation.NewToolErrorMessage(call.ID, call.Name, err))
				return ctx.Err()
			}

			state.Append(conversation.NewToolErrorMessage(call.ID, call.Name, err))
			continue
		}

		state.Append(conversation.NewToolResultMessage(call.ID, call.Name, encodeToolResult(result)))
	}

	return nil
}

// cancelled tags the state and builds the partial result returned to the caller.
func (a *Agent) cancelled(state *conversation.State) *Result {
	state.MarkCancelled()

	a.logger.Warn("agent.run.cancelled", "steps", state.Steps(), "turns", state.Len())

	return &Result{
		State:     state,
		Cancelled: true,
		Steps:     state.Steps(),
	}
}

// encodeToolResult renders a tool's return value as message content. Strings
// pass through; everything else is JSON encoded.
func encodeToolResult(result any) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", result)
	}
}
