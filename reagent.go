// Package reagent provides a high-level façade over the agent decision loop
// and the session store for turn-by-turn conversational use. Most
// applications interact with this package by:
//  1. Resolving a configuration (config.Resolve)
//  2. Building an agent with a model and tools (agent.New)
//  3. Wrapping it in a Runner and calling Run once per user turn
//
// The Runner loads the conversation for a session id, appends the user
// message, drives the loop to completion and persists the resulting state.
// Independent sessions may run in parallel; each run owns its state
// exclusively for the duration of the call.
package reagent

import (
	"context"
	"errors"

	"github.com/reagent-ai/reagent/agent"
	"github.com/reagent-ai/reagent/conversation"
	"github.com/reagent-ai/reagent/logging"
	"github.com/reagent-ai/reagent/session"
)

// Options configures a Runner instance.
type Options struct {
	// Store persists conversation state between turns (defaults to an
	// in-memory implementation).
	Store session.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Runner binds an agent to a session store for multi-turn conversations.
type Runner struct {
	agent  *agent.Agent
	store  session.Store
	logger logging.Logger
}

// New creates a Runner with optional overrides. Any unset service is
// initialized with an in-memory implementation.
func New(a *agent.Agent, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Store:  session.NewInMemoryStore(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Runner{agent: a, store: opts.Store, logger: opts.Logger}
}

// Run executes one conversational turn: it loads (or creates) the session's
// conversation, appends the user input, runs the decision loop and persists
// the resulting state. The step limit applies per turn, so the counter and
// the truncation flag are reset before the loop starts.
//
// Cancelled and failed runs are persisted too: the partial history is saved
// before the error is returned so a later turn can resume from it.
func (r *Runner) Run(ctx context.Context, sessionID, input string) (*agent.Result, error) {
	state, err := r.store.Get(sessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			return nil, err
		}
		state = conversation.NewState(sessionID)
	}

	state.StepCount = 0
	state.Truncated = false
	state.Cancelled = false

	state.Append(conversation.NewUserMessage(input))

	r.logger.Debug("runner.turn.start", "session", sessionID, "turns", state.Len())

	result, runErr := r.agent.Run(ctx, state)

	if result != nil && result.State != nil {
		if saveErr := r.store.Save(sessionID, result.State); saveErr != nil {
			r.logger.Error("runner.session.save_failed", "session", sessionID, "error", saveErr.Error())
			if runErr == nil {
				return result, saveErr
			}
		}
	}

	return result, runErr
}

// State returns the persisted conversation for a session id.
func (r *Runner) State(sessionID string) (*conversation.State, error) {
	return r.store.Get(sessionID)
}

// Reset discards the persisted conversation for a session id.
func (r *Runner) Reset(sessionID string) error {
	return r.store.Delete(sessionID)
}
