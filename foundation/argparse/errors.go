// File: errors.go
// Title: Tokenizer Error Taxonomy
// Description: Defines ParseError and the failure kinds the state machine can
//              raise. Every failure carries the rune offset of the offending
//              character and the state that was active.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial error kinds

package argparse

import (
	"errors"
	"fmt"

	mdwerror "github.com/msto63/cliparse/foundation/core/error"
)

// ErrorKind classifies a tokenizer failure
type ErrorKind int

const (
	// EndOfInput is raised when a handler dereferences past the input
	EndOfInput ErrorKind = iota + 1

	// UnterminatedQuote: input ended inside "..." or `...`
	UnterminatedQuote

	// UnterminatedBracket: input ended before an expected closing bracket
	UnterminatedBracket

	// UnterminatedExpression: input ended inside ${...}
	UnterminatedExpression

	// MalformedToken: a required fixed literal was not found
	MalformedToken

	// UnsupportedCharacter: the active state has no handler for a character
	UnsupportedCharacter
)

// String returns the name of the error kind
func (k ErrorKind) String() string {
	switch k {
	case EndOfInput:
		return "EndOfInput"
	case UnterminatedQuote:
		return "UnterminatedQuote"
	case UnterminatedBracket:
		return "UnterminatedBracket"
	case UnterminatedExpression:
		return "UnterminatedExpression"
	case MalformedToken:
		return "MalformedToken"
	case UnsupportedCharacter:
		return "UnsupportedCharacter"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Code maps the kind to the mDW error code used when reporting it
func (k ErrorKind) Code() mdwerror.Code {
	switch k {
	case EndOfInput:
		return mdwerror.CodeEndOfInput
	case UnterminatedQuote, UnterminatedBracket, UnterminatedExpression:
		return mdwerror.CodeUnterminated
	case MalformedToken:
		return mdwerror.CodeMalformedToken
	case UnsupportedCharacter:
		return mdwerror.CodeUnsupportedChar
	default:
		return mdwerror.CodeSyntax
	}
}

// ParseError represents a tokenizer failure with position information
type ParseError struct {
	Kind     ErrorKind
	Position int    // rune offset into the input
	Char     rune   // offending character, 0 at end of input
	State    string // ID of the state that raised the error
	Message  string
}

func (e *ParseError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("%s at position %d ('%c') in %s: %s", e.Kind, e.Position, e.Char, e.State, e.Message)
	}
	return fmt.Sprintf("%s at position %d in %s: %s", e.Kind, e.Position, e.State, e.Message)
}

// Code returns the mDW error code for this failure
func (e *ParseError) Code() mdwerror.Code {
	return e.Kind.Code()
}

// KindOf returns the kind of the first ParseError in err's chain, or 0
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// IsKind reports whether err's chain contains a ParseError of kind k
func IsKind(err error, k ErrorKind) bool {
	return KindOf(err) == k
}

// Errorf builds a ParseError at the context's current position. Handlers of
// custom states use it to fail the parse.
func (c *Context) Errorf(kind ErrorKind, format string, args ...interface{}) *ParseError {
	pe := &ParseError{
		Kind:     kind,
		Position: c.location,
		Message:  fmt.Sprintf(format, args...),
	}
	if c.location < len(c.input) {
		pe.Char = c.input[c.location]
	}
	if s := c.State(); s != nil {
		pe.State = s.ID()
	}
	return pe
}
