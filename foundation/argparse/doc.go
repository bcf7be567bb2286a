// File: doc.go
// Title: Argument Value Tokenizer Package Documentation
// Description: Character-by-character, stack-based tokenizer for command line
//              argument values: words, quoted strings, expressions, bytes
//              literals, lists and name=value assignments.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-24
//
// Change History:
// - 2025-02-14 v0.1.0: Initial package

/*
Package argparse tokenizes the value part of a command line argument.

The tokenizer is a pushdown state machine. A Context holds the cursor, a
stack of active states and the sink; each State is stateless data (handlers
plus a transition table) and may be shared between concurrent parses. Every
input character is handed to the state on top of the stack, which forwards it
to the Sink, enters a child state, or leaves.

Recognized forms:

  • plain words, with \ escaping the next character
  • "quoted" strings (quotes dropped at the start of a value, kept inside it)
  • `back-quoted` substitutions, kept verbatim
  • ${expressions} with nested braces, kept verbatim
  • bytes{...} literals, whose body is delivered without the wrapper
  • comma separated lists and name=value assignments

Basic use:

	tok, err := argparse.New(argparse.Options{})
	if err != nil {
		return err
	}
	res, err := tok.Tokenize(`name="John Doe",tags=a\,b`)
	if err != nil {
		return err
	}
	for _, t := range res.Tokens {
		fmt.Println(t)
	}

Values inside an enclosing list or object are tokenized with a pre-established
closer; tokenizing stops at that closer and Result.End reports its position:

	res, err := tok.Tokenize("a,b]") // with Options{Closer: ']'}: End == 3

Custom sinks receive raw characters through Parse and may implement
StateListener to observe state boundaries.
*/
package argparse
