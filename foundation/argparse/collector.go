// File: collector.go
// Title: Token Collector
// Description: A Sink that groups forwarded characters into tokens: plain
//              values, bytes literals, list separators and name/value
//              assignments. Used by Tokenizer and by callers that need the
//              structure of a value rather than its raw characters.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-17
// Modified: 2025-02-17
//
// Change History:
// - 2025-02-17 v0.1.0: Initial collector

package argparse

import (
	"fmt"
	"strings"
)

// Kind classifies a collected token
type Kind int

const (
	KindValue Kind = iota
	KindBytes
	KindListSeparator
	KindAssignment
)

// String returns the name of the token kind
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "VALUE"
	case KindBytes:
		return "BYTES"
	case KindListSeparator:
		return "LIST_SEPARATOR"
	case KindAssignment:
		return "ASSIGNMENT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one recognized piece of an argument value
type Token struct {
	Kind  Kind
	Value string
	Pos   int // rune offset of the first character
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Value, t.Pos)
}

// Collector builds tokens from forwarded characters. The zero value is ready
// to use; a Collector serves one parse.
type Collector struct {
	tokens []Token
	cur    strings.Builder
	kind   Kind
	pos    int
	open   bool
}

// Tokens returns the tokens collected so far. A value still being built is
// not included until its state is left.
func (c *Collector) Tokens() []Token {
	return c.tokens
}

// Character implements Sink
func (c *Collector) Character(ctx *Context) error {
	ch, err := ctx.Character()
	if err != nil {
		return err
	}

	switch ctx.State() {
	case ListItemSeparator:
		c.flush()
		c.tokens = append(c.tokens, Token{Kind: KindListSeparator, Value: string(ch), Pos: ctx.Location()})
	case NameValueSeparator:
		c.flush()
		c.tokens = append(c.tokens, Token{Kind: KindAssignment, Value: string(ch), Pos: ctx.Location()})
	case BytesValue:
		if !c.open {
			c.start(KindBytes, ctx.Location())
		}
		c.cur.WriteRune(ch)
	default:
		if !c.open {
			c.start(KindValue, ctx.Location())
		}
		c.cur.WriteRune(ch)
	}
	return nil
}

// EnteredState implements StateListener
func (c *Collector) EnteredState(ctx *Context) error {
	switch ctx.State() {
	case ArgumentValue:
		c.flush()
		c.start(KindValue, ctx.Location())
	case BytesValue:
		// the bytes{ prefix was consumed without content
		if c.open && c.kind == KindValue && c.cur.Len() == 0 {
			c.kind = KindBytes
			return nil
		}
		c.flush()
		c.start(KindBytes, ctx.Location())
	}
	return nil
}

// LeavingState implements StateListener
func (c *Collector) LeavingState(ctx *Context) error {
	switch ctx.State() {
	case ArgumentValue, BytesValue:
		c.flush()
	}
	return nil
}

func (c *Collector) start(kind Kind, pos int) {
	c.cur.Reset()
	c.kind = kind
	c.pos = pos
	c.open = true
}

func (c *Collector) flush() {
	if !c.open {
		return
	}
	c.tokens = append(c.tokens, Token{Kind: c.kind, Value: c.cur.String(), Pos: c.pos})
	c.cur.Reset()
	c.open = false
}
