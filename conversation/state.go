package conversation

import "time"

// State is the ordered turn history of one agent run plus its step counter.
//
// Contract:
//   - Messages are only ever appended, never edited or removed
//   - Append preserves insertion order across all mutations
//   - Messages returns a defensive copy so callers cannot reorder history
//   - One run owns its State exclusively; concurrent runs must each hold
//     their own instance (obtain independent copies via Clone)
type State struct {
	ID        string    `json:"id"`
	Turns     []Message `json:"turns"`
	StepCount int       `json:"step_count"` // Completed {model call, tool executions} rounds
	Truncated bool      `json:"truncated"`  // Run stopped at the step limit
	Cancelled bool      `json:"cancelled"`  // Run stopped by caller cancellation
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// NewState creates an empty conversation with the given ID.
func NewState(id string) *State {
	now := time.Now().UTC()
	return &State{ID: id, Turns: []Message{}, Created: now, Updated: now}
}

// Append adds messages to the history, preserving argument order.
func (s *State) Append(msgs ...Message) {
	s.Turns = append(s.Turns, msgs...)
	s.Updated = time.Now().UTC()
}

// Messages returns a copy of the turn history to prevent callers from
// mutating internal state.
func (s *State) Messages() []Message {
	msgs := make([]Message, len(s.Turns))
	copy(msgs, s.Turns)
	return msgs
}

// Len returns the number of turns recorded so far.
func (s *State) Len() int { return len(s.Turns) }

// Last returns the most recent turn, or false for an empty conversation.
func (s *State) Last() (Message, bool) {
	if len(s.Turns) == 0 {
		return Message{}, false
	}
	return s.Turns[len(s.Turns)-1], true
}

// Steps returns the number of completed rounds.
func (s *State) Steps() int { return s.StepCount }

// IncrementStep advances the step counter by one round.
func (s *State) IncrementStep() {
	s.StepCount++
	s.Updated = time.Now().UTC()
}

// MarkTruncated flags the conversation as stopped at the step limit.
func (s *State) MarkTruncated() {
	s.Truncated = true
	s.Updated = time.Now().UTC()
}

// MarkCancelled flags the conversation as stopped by caller cancellation.
func (s *State) MarkCancelled() {
	s.Cancelled = true
	s.Updated = time.Now().UTC()
}

// Clone returns a deep copy safe for independent mutation. Tool call slices
// are copied as well since assistant turns share them with model responses.
func (s *State) Clone() *State {
	clone := *s
	clone.Turns = make([]Message, len(s.Turns))
	for i, m := range s.Turns {
		if len(m.ToolCalls) > 0 {
			calls := make([]ToolCall, len(m.ToolCalls))
			copy(calls, m.ToolCalls)
			m.ToolCalls = calls
		}
		clone.Turns[i] = m
	}
	return &clone
}
