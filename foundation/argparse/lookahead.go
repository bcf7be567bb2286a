// File: lookahead.go
// Title: Lookahead Token Matcher
// Description: Recognizes a fixed keyword ahead of the cursor, tolerating
//              plain spaces between its characters, without consuming input
//              unless the whole keyword matches.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-14
//
// Change History:
// - 2025-02-14 v0.1.0: Initial matcher for the bytes{ prefix

package argparse

// BytesToken introduces a binary literal
const BytesToken = "bytes{"

// MatchToken scans input for literal. Plain spaces are skipped; any other
// character must be the next character of literal. It returns the rune
// offset just past the last matched character (skipped spaces included), or
// -1 if input does not start with literal.
func MatchToken(input, literal string) int {
	return matchRunes([]rune(input), 0, []rune(literal))
}

// MatchToken runs the matcher from the cursor. The result is relative to
// Location(); nothing is consumed.
func (c *Context) MatchToken(literal string) int {
	return matchRunes(c.input, c.location, []rune(literal))
}

func matchRunes(input []rune, from int, literal []rune) int {
	if len(literal) == 0 {
		return 0
	}

	matched := 0
	for i := from; i < len(input); i++ {
		ch := input[i]
		if ch == ' ' {
			continue
		}
		if ch != literal[matched] {
			return -1
		}
		matched++
		if matched == len(literal) {
			return i - from + 1
		}
	}
	return -1
}

// ExpectToken consumes literal starting at the cursor, leaving the cursor on
// its last character. It fails with MalformedToken when the input does not
// start with literal.
func (c *Context) ExpectToken(literal string) error {
	n := c.MatchToken(literal)
	if n < 0 {
		return c.Errorf(MalformedToken, "expected %q", literal)
	}
	c.Advance(n - 1)
	return nil
}
