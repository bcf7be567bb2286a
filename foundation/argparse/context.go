// File: context.go
// Title: Parsing Context
// Description: The mutable side of a parse: a cursor over the input, the
//              stack of active states with their expected closers, the set of
//              deactivated characters and the sink. A Context is created for
//              one input and discarded afterwards.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial context and driver loop

package argparse

import (
	mdwerror "github.com/msto63/cliparse/foundation/core/error"
)

// frame is one level of the state stack
type frame struct {
	state      *State
	closer     rune // 0 when this level expects no closing bracket
	start      int  // location at which the level was entered
	braceLevel int
}

// ContextOptions configures a Context
type ContextOptions struct {
	// Closer pre-establishes the closing bracket for the outermost level,
	// for values parsed inside an enclosing list or object.
	Closer rune

	// Deactivated lists characters stripped of their special meaning
	Deactivated string
}

// Context holds all per-parse data
type Context struct {
	source      string
	input       []rune
	location    int
	frames      []frame
	deactivated map[rune]struct{}
	rootCloser  rune
	sink        Sink
	listener    StateListener
	started     bool
	finished    bool
}

// NewContext creates a context for one parse of input
func NewContext(input string, sink Sink, opts ContextOptions) *Context {
	c := &Context{
		source:      input,
		input:       []rune(input),
		frames:      make([]frame, 0, 8),
		deactivated: make(map[rune]struct{}, len(opts.Deactivated)),
		rootCloser:  opts.Closer,
		sink:        sink,
	}
	for _, ch := range opts.Deactivated {
		c.deactivated[ch] = struct{}{}
	}
	if l, ok := sink.(StateListener); ok {
		c.listener = l
	}
	return c
}

// Run pushes root and feeds every input character to the state on top of the
// stack. It returns when the input is exhausted, when the outermost state
// leaves, or on the first error.
func (c *Context) Run(root *State) error {
	if c.started {
		return mdwerror.New("parsing context already used").
			WithCode(mdwerror.CodeInternal).
			WithOperation("argparse.Context.Run")
	}
	c.started = true

	if err := c.push(root, c.rootCloser); err != nil {
		return err
	}

	for !c.finished && c.location < len(c.input) {
		ch := c.input[c.location]
		top := c.frames[len(c.frames)-1].state

		handler := top.handlerFor(ch)
		if handler == nil {
			return c.Errorf(UnsupportedCharacter, "no transition or default handler for '%c'", ch)
		}
		if err := handler(c); err != nil {
			return err
		}
		if c.finished {
			return nil
		}
		c.location++
	}

	if c.location > len(c.input) {
		c.location = len(c.input)
	}
	if c.finished {
		return nil
	}
	return c.unwind()
}

// unwind closes every remaining level at end of input
func (c *Context) unwind() error {
	for len(c.frames) > 0 {
		if end := c.frames[len(c.frames)-1].state.end; end != nil {
			if err := end(c); err != nil {
				return err
			}
		}
		if err := c.LeaveState(); err != nil {
			return err
		}
	}
	return nil
}

// Input returns the full input string
func (c *Context) Input() string {
	return c.source
}

// Location returns the zero-based rune offset of the current character
func (c *Context) Location() int {
	return c.location
}

// Character returns the character at the cursor
func (c *Context) Character() (rune, error) {
	if c.location >= len(c.input) {
		return 0, c.Errorf(EndOfInput, "no character at position %d", c.location)
	}
	return c.input[c.location], nil
}

// Peek returns the character n positions after the cursor
func (c *Context) Peek(n int) (rune, bool) {
	i := c.location + n
	if i < 0 || i >= len(c.input) {
		return 0, false
	}
	return c.input[i], true
}

// Advance moves the cursor forward by n characters. The cursor never moves
// backwards; n <= 0 is a no-op.
func (c *Context) Advance(n int) {
	if n <= 0 {
		return
	}
	c.location += n
	if c.location > len(c.input) {
		c.location = len(c.input)
	}
}

// IsEndOfContent reports whether the cursor has reached the end of input
func (c *Context) IsEndOfContent() bool {
	return c.location >= len(c.input)
}

// EnterState pushes s and runs its enter handler on the current character
func (c *Context) EnterState(s *State) error {
	return c.push(s, 0)
}

// EnterStateFor pushes s, records the closer matching the opening bracket for
// the new level, and runs the enter handler.
func (c *Context) EnterStateFor(s *State, opener rune) error {
	return c.push(s, closerFor(opener))
}

func (c *Context) push(s *State, closer rune) error {
	c.frames = append(c.frames, frame{state: s, closer: closer, start: c.location})
	if c.listener != nil {
		if err := c.listener.EnteredState(c); err != nil {
			return err
		}
	}
	if s.enter != nil {
		return s.enter(c)
	}
	return nil
}

// LeaveState pops the current state and runs the parent's return handler.
// Leaving the outermost state completes the parse.
func (c *Context) LeaveState() error {
	if len(c.frames) == 0 {
		return mdwerror.New("leave on empty state stack").
			WithCode(mdwerror.CodeInternal).
			WithOperation("argparse.Context.LeaveState")
	}
	if c.listener != nil {
		if err := c.listener.LeavingState(c); err != nil {
			return err
		}
	}

	c.frames = c.frames[:len(c.frames)-1]
	if len(c.frames) == 0 {
		c.finished = true
		return nil
	}

	if ret := c.frames[len(c.frames)-1].state.ret; ret != nil {
		return ret(c)
	}
	return nil
}

// LookFor records the closing bracket expected by the current level
func (c *Context) LookFor(closer rune) {
	if len(c.frames) > 0 {
		c.frames[len(c.frames)-1].closer = closer
	}
}

// LookingFor returns the innermost outstanding closer
func (c *Context) LookingFor() (rune, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].closer != 0 {
			return c.frames[i].closer, true
		}
	}
	return 0, false
}

// IsLookingFor reports whether ch is the innermost outstanding closer
func (c *Context) IsLookingFor(ch rune) bool {
	closer, ok := c.LookingFor()
	return ok && closer == ch
}

// IsDeactivated reports whether ch has been stripped of its special meaning
func (c *Context) IsDeactivated(ch rune) bool {
	_, ok := c.deactivated[ch]
	return ok
}

// Deactivate strips ch of its special meaning for the rest of the parse
func (c *Context) Deactivate(ch rune) {
	c.deactivated[ch] = struct{}{}
}

// Activate restores the special meaning of ch
func (c *Context) Activate(ch rune) {
	delete(c.deactivated, ch)
}

// State returns the state on top of the stack, or nil when none is active
func (c *Context) State() *State {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1].state
}

// Depth returns the number of active states
func (c *Context) Depth() int {
	return len(c.frames)
}

// EnteredAt returns the location at which the current state was entered
func (c *Context) EnteredAt() int {
	if len(c.frames) == 0 {
		return 0
	}
	return c.frames[len(c.frames)-1].start
}

// BraceLevel returns the brace nesting level of the current state
func (c *Context) BraceLevel() int {
	if len(c.frames) == 0 {
		return 0
	}
	return c.frames[len(c.frames)-1].braceLevel
}

// IncBraceLevel increments the brace nesting level of the current state
func (c *Context) IncBraceLevel() {
	if len(c.frames) > 0 {
		c.frames[len(c.frames)-1].braceLevel++
	}
}

// DecBraceLevel decrements the brace nesting level and returns the new value
func (c *Context) DecBraceLevel() int {
	if len(c.frames) == 0 {
		return 0
	}
	f := &c.frames[len(c.frames)-1]
	if f.braceLevel > 0 {
		f.braceLevel--
	}
	return f.braceLevel
}

// Forward delivers the current character to the sink
func (c *Context) Forward() error {
	if c.sink == nil {
		return nil
	}
	return c.sink.Character(c)
}

// isCloser reports whether ch closes a list or an object
func isCloser(ch rune) bool {
	return ch == ']' || ch == '}'
}

// closerFor returns the closing bracket for an opening one
func closerFor(opener rune) rune {
	switch opener {
	case '[':
		return ']'
	case '{':
		return '}'
	default:
		return 0
	}
}
