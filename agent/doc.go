// Package agent implements the ReAct decision loop.
//
// The loop is a small state machine: Thinking (model invocation) either
// terminates with the model's answer or transitions to a tool round in which
// every requested tool is executed sequentially, in the order the model
// emitted the calls, with each result appended to the conversation before
// the loop returns to Thinking. A step limit bounds the number of model
// invocations per run; hitting it is a reported condition (a truncated
// Result), not an error.
//
// Scheduling is single-threaded and sequential within one run. The model
// call and each tool call are the only suspension points; both honor the
// run's context for cancellation.
package agent
