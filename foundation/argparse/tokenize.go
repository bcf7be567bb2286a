// File: tokenize.go
// Title: Argument Value Tokenizer
// Description: Entry points for tokenizing an argument value. Parse drives
//              the grammar into any Sink; Tokenizer wraps it with input
//              validation, logging and mDW error reporting and returns the
//              collected tokens.
// Author: msto63
// Version: v0.1.1
// Created: 2025-02-17
// Modified: 2025-02-24
//
// Change History:
// - 2025-02-17 v0.1.0: Initial tokenizer
// - 2025-02-24 v0.1.1: Trace listener for state transitions

package argparse

import (
	"errors"
	"unicode/utf8"

	mdwerror "github.com/msto63/cliparse/foundation/core/error"
	mdwlog "github.com/msto63/cliparse/foundation/core/log"
)

// DefaultMaxInputLength limits the input accepted by a Tokenizer
const DefaultMaxInputLength = 4096

// Parse runs the argument value grammar over input, forwarding content to
// sink. It returns the rune offset at which parsing stopped: the position of
// the pre-established closer if one was found, the input length otherwise.
func Parse(input string, sink Sink, opts ContextOptions) (int, error) {
	ctx := NewContext(input, sink, opts)
	err := ctx.Run(ArgumentValueInitial)
	return ctx.Location(), err
}

// Options configures tokenizer behavior
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int

	// Deactivated lists characters stripped of their special meaning, e.g. "="
	Deactivated string

	// Closer is the closing bracket of an enclosing list or object
	Closer rune

	// Trace logs every state transition at trace level
	Trace bool
}

// Result is the outcome of a successful tokenization
type Result struct {
	Input  string
	Tokens []Token
	End    int // rune offset at which tokenizing stopped
}

// Values returns the text of all value and bytes tokens in order
func (r *Result) Values() []string {
	values := make([]string, 0, len(r.Tokens))
	for _, t := range r.Tokens {
		if t.Kind == KindValue || t.Kind == KindBytes {
			values = append(values, t.Value)
		}
	}
	return values
}

// Tokenizer splits argument values into tokens. It holds no per-parse data
// and is safe for concurrent use.
type Tokenizer struct {
	logger  *mdwlog.Logger
	options Options
}

// New creates a tokenizer with the given options
func New(opts Options) (*Tokenizer, error) {
	if opts.MaxInputLength < 0 {
		return nil, mdwerror.Newf("invalid maximum input length: %d", opts.MaxInputLength).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("argparse.New")
	}
	if opts.Closer != 0 && !isCloser(opts.Closer) {
		return nil, mdwerror.Newf("invalid closing bracket: %q", opts.Closer).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("argparse.New")
	}

	// Set defaults
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	return &Tokenizer{
		logger:  opts.Logger.WithField("component", "argparse"),
		options: opts,
	}, nil
}

// Tokenize splits input into tokens
func (t *Tokenizer) Tokenize(input string) (*Result, error) {
	length := utf8.RuneCountInString(input)
	if length > t.options.MaxInputLength {
		return nil, mdwerror.Newf("input exceeds maximum length: %d > %d", length, t.options.MaxInputLength).
			WithCode(mdwerror.CodeInputTooLong).
			WithOperation("argparse.Tokenize").
			WithDetail("length", length).
			WithDetail("max_length", t.options.MaxInputLength)
	}

	t.logger.Debug("Starting tokenizing", mdwlog.Fields{
		"input":  input,
		"length": length,
	})

	collector := &Collector{}
	var sink Sink = collector
	if t.options.Trace && t.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		sink = &traceSink{Collector: collector, logger: t.logger}
	}

	end, err := Parse(input, sink, ContextOptions{
		Closer:      t.options.Closer,
		Deactivated: t.options.Deactivated,
	})
	if err != nil {
		wrapped := t.wrapError(err)
		t.logger.WarnWithErr("Tokenizing failed", wrapped, mdwlog.Fields{
			"input": input,
		})
		return nil, wrapped
	}

	result := &Result{
		Input:  input,
		Tokens: collector.Tokens(),
		End:    end,
	}

	t.logger.Debug("Tokenizing completed successfully", mdwlog.Fields{
		"input":  input,
		"tokens": len(result.Tokens),
		"end":    end,
	})

	return result, nil
}

func (t *Tokenizer) wrapError(err error) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return mdwerror.Wrap(err, "tokenizing failed").WithOperation("argparse.Tokenize")
	}
	return mdwerror.Wrap(pe, "tokenizing failed").
		WithCode(pe.Code()).
		WithOperation("argparse.Tokenize").
		WithDetail("position", pe.Position).
		WithDetail("kind", pe.Kind.String()).
		WithDetail("state", pe.State)
}

// traceSink logs state transitions before handing them to the collector
type traceSink struct {
	*Collector
	logger *mdwlog.Logger
}

func (s *traceSink) EnteredState(ctx *Context) error {
	s.logger.Trace("Entered state", mdwlog.Fields{
		"state":    ctx.State().ID(),
		"location": ctx.Location(),
		"depth":    ctx.Depth(),
	})
	return s.Collector.EnteredState(ctx)
}

func (s *traceSink) LeavingState(ctx *Context) error {
	s.logger.Trace("Leaving state", mdwlog.Fields{
		"state":    ctx.State().ID(),
		"location": ctx.Location(),
		"depth":    ctx.Depth(),
	})
	return s.Collector.LeavingState(ctx)
}
