package agent

import (
	"fmt"
	"time"

	"github.com/reagent-ai/reagent/config"
	"github.com/reagent-ai/reagent/logging"
	"github.com/reagent-ai/reagent/model"
	"github.com/reagent-ai/reagent/tool"
)

// ModelInvocationError wraps a provider failure (timeout, API error). It is
// fatal to the current run and is not retried by the loop; retry policy, if
// any, belongs to the model implementation.
type ModelInvocationError struct {
	Model string
	Err   error
}

// Error implements the error interface.
func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed (%s): %v", e.Model, e.Err)
}

// Unwrap exposes the underlying provider error.
func (e *ModelInvocationError) Unwrap() error { return e.Err }

// Options configures an Agent instance. Use functional options with New to
// override defaults.
type Options struct {
	Registry *tool.Registry
	Logger   logging.Logger
	Clock    func() time.Time // Supplies system_time for prompt rendering
}

// Agent runs the ReAct decision loop: invoke the model, inspect the response
// for tool-call requests, and either finish or execute the requested tools
// and re-invoke the model, subject to the configured step limit.
//
// An Agent holds no per-run mutable state. Its configuration is a value and
// its registry is read-only after setup, so one Agent may serve multiple
// conversation runs in parallel as long as each run owns its own State.
type Agent struct {
	cfg      config.Config
	llm      model.Model
	registry *tool.Registry
	logger   logging.Logger
	now      func() time.Time
}

// New creates an agent from a resolved configuration and a model.
func New(cfg config.Config, llm model.Model, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Logger: logging.NoOpLogger{},
		Clock:  time.Now,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Registry == nil {
		opts.Registry = tool.NewRegistry()
	}

	return &Agent{
		cfg:      cfg,
		llm:      llm,
		registry: opts.Registry,
		logger:   opts.Logger,
		now:      opts.Clock,
	}
}

// Config returns the agent's resolved configuration.
func (a *Agent) Config() config.Config { return a.cfg }

// Registry returns the agent's tool registry.
func (a *Agent) Registry() *tool.Registry { return a.registry }

// RegisterTools adds tools to the agent's capability set. It fails on the
// first duplicate name; registration errors are setup-time fatal.
func (a *Agent) RegisterTools(tools ...tool.Tool) error {
	return a.registry.RegisterAll(tools...)
}
