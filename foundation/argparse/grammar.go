// File: grammar.go
// Title: Argument Value Grammar
// Description: The concrete states of the argument value grammar: words with
//              escapes, quoted and back-quoted strings, ${...} expressions,
//              bytes{...} literals, comma separated lists and name=value
//              assignments. All states are package-level values without
//              per-parse data.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-14
// Modified: 2025-02-21
//
// Change History:
// - 2025-02-14 v0.1.0: Initial grammar
// - 2025-02-21 v0.1.1: Root state for values inside enclosing brackets

package argparse

// State IDs
const (
	ArgumentValueInitialID = "ARG_VALUE_INITIAL"
	ArgumentValueID        = "ARG_VALUE"
	QuotesIncludedID       = "QUOTES_INCLUDED"
	QuotesExcludedID       = "QUOTES_EXCLUDED"
	BackQuotesID           = "BACK_QUOTES"
	ExpressionValueID      = "EXPR_VALUE"
	BytesValueID           = "BYTES_VALUE"
	ListItemSeparatorID    = "LIST_ITEM_SEPARATOR"
	NameValueSeparatorID   = "NAME_VALUE_SEPARATOR"
)

var (
	// ListItemSeparator forwards the ',' between list items and leaves
	ListItemSeparator = NewState(StateConfig{
		ID:    ListItemSeparatorID,
		Enter: forwardAndLeave,
	})

	// NameValueSeparator forwards the '=' of an assignment and leaves
	NameValueSeparator = NewState(StateConfig{
		ID:    NameValueSeparatorID,
		Enter: forwardAndLeave,
	})

	// QuotesIncluded is a "..." string whose quotes are part of the content
	QuotesIncluded = newQuotesState(QuotesIncludedID, '"', true)

	// QuotesExcluded is a "..." string whose quotes are dropped
	QuotesExcluded = newQuotesState(QuotesExcludedID, '"', false)

	// BackQuotes is a `...` substitution, always reproduced verbatim
	BackQuotes = newQuotesState(BackQuotesID, '`', true)

	// ExpressionValue is a ${...} expression, reproduced verbatim
	ExpressionValue = NewState(StateConfig{
		ID:      ExpressionValueID,
		Enter:   enterExpression,
		Default: expressionCharacter,
		End:     unterminatedExpression,
	})

	// BytesValue is the body of a bytes{...} literal
	BytesValue = NewState(StateConfig{
		ID:      BytesValueID,
		Default: bytesCharacter,
		End:     unterminatedBytes,
	})

	// ArgumentValue recognizes one value of a list, or the name and value of
	// an assignment
	ArgumentValue = NewState(StateConfig{
		ID:      ArgumentValueID,
		Enter:   enterArgumentValue,
		Default: argumentValueCharacter,
		Return:  returnToArgumentValue,
		Transitions: map[rune]*State{
			',': ListItemSeparator,
			'"': QuotesIncluded,
			'`': BackQuotes,
			'$': ExpressionValue,
		},
	})

	// ArgumentValueInitial is the outermost state. It starts a new
	// ArgumentValue for every list item and completes the parse on the
	// pre-established closing bracket.
	ArgumentValueInitial = NewState(StateConfig{
		ID:      ArgumentValueInitialID,
		Default: initialCharacter,
		Return:  returnToInitial,
		End:     initialEnd,
		Transitions: map[rune]*State{
			',': ListItemSeparator,
		},
	})
)

// WordCharacters returns the handler for ordinary word characters. A
// backslash followed by another character forwards only that character. A
// backslash at the very end of input is a line-break escape: dropped when
// ignoreLineBreakEscape is set, forwarded otherwise.
func WordCharacters(ignoreLineBreakEscape bool) Handler {
	return func(ctx *Context) error {
		return wordCharacter(ctx, ignoreLineBreakEscape)
	}
}

func wordCharacter(ctx *Context, ignoreLineBreakEscape bool) error {
	ch, err := ctx.Character()
	if err != nil {
		return err
	}
	if ch != '\\' {
		return ctx.Forward()
	}
	if _, ok := ctx.Peek(1); ok {
		ctx.Advance(1)
		return ctx.Forward()
	}
	if ignoreLineBreakEscape {
		return nil
	}
	return ctx.Forward()
}

func forwardAndLeave(ctx *Context) error {
	if err := ctx.Forward(); err != nil {
		return err
	}
	return ctx.LeaveState()
}

// ArgumentValue

func enterArgumentValue(ctx *Context) error {
	ch, err := ctx.Character()
	if err != nil {
		return err
	}

	switch ch {
	case '"':
		return ctx.EnterState(QuotesExcluded)
	case '$':
		return ctx.EnterState(ExpressionValue)
	case '`':
		return ctx.EnterState(BackQuotes)
	case 'b':
		if n := ctx.MatchToken(BytesToken); n > 0 {
			// leave the cursor on the '{' that ends the match
			ctx.Advance(n - 1)
			return ctx.EnterStateFor(BytesValue, '{')
		}
		return ctx.Forward()
	default:
		return wordCharacter(ctx, true)
	}
}

func argumentValueCharacter(ctx *Context) error {
	ch, err := ctx.Character()
	if err != nil {
		return err
	}

	if isCloser(ch) && ctx.IsLookingFor(ch) {
		return ctx.LeaveState()
	}
	if ch == '=' && !ctx.IsDeactivated(ch) {
		return ctx.EnterState(NameValueSeparator)
	}
	return wordCharacter(ctx, true)
}

func returnToArgumentValue(ctx *Context) error {
	// checked first: at end of input there is no character to inspect
	if ctx.IsEndOfContent() {
		return nil
	}
	ch, err := ctx.Character()
	if err != nil {
		return err
	}
	if ch == ',' {
		return ctx.LeaveState()
	}
	return nil
}

// ArgumentValueInitial

func initialCharacter(ctx *Context) error {
	ch, err := ctx.Character()
	if err != nil {
		return err
	}
	if ctx.IsLookingFor(ch) {
		return ctx.LeaveState()
	}
	return ctx.EnterState(ArgumentValue)
}

func returnToInitial(ctx *Context) error {
	if ctx.IsEndOfContent() {
		return nil
	}
	ch, err := ctx.Character()
	if err != nil {
		return err
	}
	if ctx.IsLookingFor(ch) {
		return ctx.LeaveState()
	}
	return nil
}

func initialEnd(ctx *Context) error {
	if closer, ok := ctx.LookingFor(); ok {
		return ctx.Errorf(UnterminatedBracket, "closing '%c' missing", closer)
	}
	return nil
}

// Quotes

func newQuotesState(id string, quote rune, included bool) *State {
	return NewState(StateConfig{
		ID: id,
		Enter: func(ctx *Context) error {
			if included {
				return ctx.Forward()
			}
			return nil
		},
		Default: func(ctx *Context) error {
			return quotedCharacter(ctx, quote, included)
		},
		End: func(ctx *Context) error {
			return ctx.Errorf(UnterminatedQuote, "closing %c missing for quote opened at position %d", quote, ctx.EnteredAt())
		},
	})
}

func quotedCharacter(ctx *Context, quote rune, included bool) error {
	ch, err := ctx.Character()
	if err != nil {
		return err
	}

	switch ch {
	case quote:
		if included {
			if err := ctx.Forward(); err != nil {
				return err
			}
		}
		return ctx.LeaveState()
	case '\\':
		next, ok := ctx.Peek(1)
		if !ok {
			return ctx.Forward()
		}
		if included {
			if err := ctx.Forward(); err != nil {
				return err
			}
			ctx.Advance(1)
			return ctx.Forward()
		}
		// excluded quotes unescape only the quote and the backslash itself
		if next == quote || next == '\\' {
			ctx.Advance(1)
		}
		return ctx.Forward()
	default:
		return ctx.Forward()
	}
}

// Expression

func enterExpression(ctx *Context) error {
	if err := ctx.Forward(); err != nil {
		return err
	}
	if next, ok := ctx.Peek(1); !ok || next != '{' {
		// a lone '$' is ordinary content
		return ctx.LeaveState()
	}
	ctx.Advance(1)
	ctx.IncBraceLevel()
	return ctx.Forward()
}

func expressionCharacter(ctx *Context) error {
	ch, err := ctx.Character()
	if err != nil {
		return err
	}

	switch ch {
	case '{':
		ctx.IncBraceLevel()
		return ctx.Forward()
	case '}':
		if err := ctx.Forward(); err != nil {
			return err
		}
		if ctx.DecBraceLevel() == 0 {
			return ctx.LeaveState()
		}
		return nil
	case '\\':
		if _, ok := ctx.Peek(1); ok {
			if err := ctx.Forward(); err != nil {
				return err
			}
			ctx.Advance(1)
		}
		return ctx.Forward()
	default:
		return ctx.Forward()
	}
}

func unterminatedExpression(ctx *Context) error {
	return ctx.Errorf(UnterminatedExpression, "closing } missing for expression opened at position %d", ctx.EnteredAt())
}

// Bytes

func bytesCharacter(ctx *Context) error {
	ch, err := ctx.Character()
	if err != nil {
		return err
	}
	if ch == '}' && ctx.IsLookingFor(ch) {
		return ctx.LeaveState()
	}
	return ctx.Forward()
}

func unterminatedBytes(ctx *Context) error {
	return ctx.Errorf(UnterminatedBracket, "closing } missing for %s literal opened at position %d", BytesToken, ctx.EnteredAt())
}
