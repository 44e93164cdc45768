package reagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reagent-ai/reagent/agent"
	"github.com/reagent-ai/reagent/config"
	"github.com/reagent-ai/reagent/conversation"
	"github.com/reagent-ai/reagent/model"
)

func newRunner(t *testing.T, maxSteps int, llm model.Model) *Runner {
	t.Helper()

	cfg, err := config.Resolve(map[string]any{"max_steps": maxSteps})
	require.NoError(t, err)

	return New(agent.New(cfg, llm))
}

func TestRunnerPersistsConversationAcrossTurns(t *testing.T) {
	llm := model.NewScriptedModel(
		model.Response{Content: "first answer", StopReason: "stop"},
		model.Response{Content: "second answer", StopReason: "stop"},
	)

	runner := newRunner(t, 3, llm)
	ctx := context.Background()

	result, err := runner.Run(ctx, "s1", "first question")
	require.NoError(t, err)
	assert.Equal(t, "first answer", result.FinalText)

	result, err = runner.Run(ctx, "s1", "second question")
	require.NoError(t, err)
	assert.Equal(t, "second answer", result.FinalText)

	state, err := runner.State("s1")
	require.NoError(t, err)

	msgs := state.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "first question", msgs[0].Content)
	assert.Equal(t, "first answer", msgs[1].Content)
	assert.Equal(t, "second question", msgs[2].Content)
	assert.Equal(t, "second answer", msgs[3].Content)

	// The second turn's model request carried the whole history.
	reqs := llm.Requests()
	require.Len(t, reqs, 2)
	assert.Len(t, reqs[1].Messages, 3)
}

func TestRunnerResetsStepBudgetPerTurn(t *testing.T) {
	llm := model.NewScriptedModel(
		model.Response{Content: "a", StopReason: "stop"},
		model.Response{Content: "b", StopReason: "stop"},
	)

	runner := newRunner(t, 1, llm)
	ctx := context.Background()

	// Two consecutive turns each consume one step without tripping the limit.
	first, err := runner.Run(ctx, "s1", "one")
	require.NoError(t, err)
	assert.False(t, first.Truncated)
	assert.Equal(t, 1, first.Steps)

	second, err := runner.Run(ctx, "s1", "two")
	require.NoError(t, err)
	assert.False(t, second.Truncated)
	assert.Equal(t, 1, second.Steps)
}

func TestRunnerClearsTruncationFlagOnNextTurn(t *testing.T) {
	llm := model.NewScriptedModel(
		model.Response{
			ToolCalls:  []conversation.ToolCall{{ID: "c1", Name: "nope", Arguments: `{}`}},
			StopReason: "tool_calls",
		},
		model.Response{Content: "fine now", StopReason: "stop"},
	)

	runner := newRunner(t, 1, llm)
	ctx := context.Background()

	first, err := runner.Run(ctx, "s1", "hard question")
	require.NoError(t, err)
	assert.True(t, first.Truncated)

	// ScriptedModel advanced past the tool-calling response, so the next
	// turn completes and the persisted truncation flag is cleared.
	second, err := runner.Run(ctx, "s1", "easier question")
	require.NoError(t, err)
	assert.False(t, second.Truncated)
	assert.Equal(t, "fine now", second.FinalText)

	state, err := runner.State("s1")
	require.NoError(t, err)
	assert.False(t, state.Truncated)
}

func TestRunnerIndependentSessions(t *testing.T) {
	llm := model.NewScriptedModel(model.Response{Content: "ok", StopReason: "stop"})

	runner := newRunner(t, 2, llm)
	ctx := context.Background()

	_, err := runner.Run(ctx, "alice", "hi")
	require.NoError(t, err)
	_, err = runner.Run(ctx, "bob", "hello")
	require.NoError(t, err)

	aliceState, err := runner.State("alice")
	require.NoError(t, err)
	bobState, err := runner.State("bob")
	require.NoError(t, err)

	assert.Equal(t, 2, aliceState.Len())
	assert.Equal(t, 2, bobState.Len())
	assert.Equal(t, "hi", aliceState.Messages()[0].Content)
	assert.Equal(t, "hello", bobState.Messages()[0].Content)
}

func TestRunnerReset(t *testing.T) {
	llm := model.NewScriptedModel(model.Response{Content: "ok", StopReason: "stop"})

	runner := newRunner(t, 2, llm)

	_, err := runner.Run(context.Background(), "s1", "hi")
	require.NoError(t, err)

	require.NoError(t, runner.Reset("s1"))

	_, err = runner.State("s1")
	assert.Error(t, err)
}
