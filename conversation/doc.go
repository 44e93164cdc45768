// Package conversation defines the turn history shared between the agent
// loop, model providers and the session store.
//
// A State accumulates a pattern of:
//
//  1. user message — the caller's input
//  2. assistant message with ToolCalls — the model picking tools to use
//  3. tool messages — the results (or errors) of the executed tools
//     (... repeat 2 and 3 as needed ...)
//  4. assistant message without ToolCalls — the final answer
//
// History is append-only. The step counter tracks completed rounds of
// {model invocation, optional tool executions} and never exceeds the
// configured step limit.
package conversation
