// File: state.go
// Title: Parsing State Descriptor
// Description: A State is plain data: an ID, up to four handler functions and
//              a transition table from trigger characters to child states.
//              States hold no per-parse data and may be shared freely between
//              concurrent parses.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial state descriptor

package argparse

// Handler processes the context's current character. It either forwards the
// character to the sink, enters a state, leaves the current state or advances
// the cursor over a recognized span.
type Handler func(ctx *Context) error

// StateConfig describes a state to build with NewState
type StateConfig struct {
	ID string

	// Enter runs once, on the character that made the state active
	Enter Handler

	// Default runs for characters without a transition
	Default Handler

	// Return runs when a child of this state has just been left
	Return Handler

	// End runs when input is exhausted while the state is still active
	End Handler

	// Transitions maps trigger characters to child states. Checked before Default.
	Transitions map[rune]*State
}

// State is one grammar production of the tokenizer
type State struct {
	id          string
	enter       Handler
	def         Handler
	ret         Handler
	end         Handler
	transitions map[rune]*State
}

// NewState builds a state. The transition table is copied, so later changes
// to cfg.Transitions do not affect the state.
func NewState(cfg StateConfig) *State {
	s := &State{
		id:    cfg.ID,
		enter: cfg.Enter,
		def:   cfg.Default,
		ret:   cfg.Return,
		end:   cfg.End,
	}
	if len(cfg.Transitions) > 0 {
		s.transitions = make(map[rune]*State, len(cfg.Transitions))
		for ch, child := range cfg.Transitions {
			s.transitions[ch] = child
		}
	}
	return s
}

// ID returns the stable name of the state
func (s *State) ID() string {
	return s.id
}

// String implements fmt.Stringer
func (s *State) String() string {
	return s.id
}

// Transition returns the child state entered on ch, if any
func (s *State) Transition(ch rune) (*State, bool) {
	child, ok := s.transitions[ch]
	return child, ok
}

// handlerFor resolves the handler for ch: a transition wins over the default
func (s *State) handlerFor(ch rune) Handler {
	if child, ok := s.transitions[ch]; ok {
		return func(ctx *Context) error {
			return ctx.EnterState(child)
		}
	}
	return s.def
}
