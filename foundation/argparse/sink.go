// File: sink.go
// Title: Token Content Sink
// Description: The output side of the tokenizer. States never accumulate
//              text; every content character is delivered to a Sink, which
//              can inspect the context (current state, position) to decide
//              what the character means.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial sink contract

package argparse

// Sink receives content characters. ctx.Character() is valid during the call.
type Sink interface {
	Character(ctx *Context) error
}

// StateListener is implemented by sinks that also want to observe state
// boundaries. EnteredState runs after the new frame is pushed and before the
// state's enter handler; LeavingState runs while the leaving state is still
// on top.
type StateListener interface {
	EnteredState(ctx *Context) error
	LeavingState(ctx *Context) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ctx *Context) error

// Character implements Sink
func (f SinkFunc) Character(ctx *Context) error {
	return f(ctx)
}
