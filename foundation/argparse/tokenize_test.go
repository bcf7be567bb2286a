// File: tokenize_test.go
// Title: Tokenizer Tests
// Description: Tests for option validation, result values, input limits, error
//              wrapping, logging and concurrent use of a Tokenizer.
// Author: msto63
// Version: v0.1.1
// Created: 2025-02-17
// Modified: 2025-02-24
//
// Change History:
// - 2025-02-17 v0.1.0: Initial tests
// - 2025-02-24 v0.1.1: Trace logging tests

package argparse

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	mdwerror "github.com/msto63/cliparse/foundation/core/error"
	mdwlog "github.com/msto63/cliparse/foundation/core/log"
)

func newTestTokenizer(t *testing.T, opts Options) *Tokenizer {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = mdwlog.Discard()
	}
	tok, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return tok
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative max length", Options{MaxInputLength: -1}},
		{"unknown closer", Options{Closer: 'x'}},
		{"parenthesis closer", Options{Closer: ')'}},
		{"angle closer", Options{Closer: '>'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
				t.Errorf("New() = %v, want CodeInvalidInput", err)
			}
		})
	}
}

func TestTokenizer_Tokenize(t *testing.T) {
	tok := newTestTokenizer(t, Options{})

	res, err := tok.Tokenize(`name="John Doe",tags=a\,b`)
	if err != nil {
		t.Fatal(err)
	}

	want := []Token{
		value("name", 0), assign(4), value(`"John Doe"`, 5), sep(15),
		value("tags", 16), assign(20), value("a,b", 21),
	}
	if diff := cmp.Diff(want, res.Tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	if res.End != 25 {
		t.Errorf("End = %d, want 25", res.End)
	}
	if diff := cmp.Diff([]string{"name", `"John Doe"`, "tags", "a,b"}, res.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestResult_Values(t *testing.T) {
	tok := newTestTokenizer(t, Options{})

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "adjacent separators", input: "a,,b", want: []string{"a", "b"}},
		{name: "quoted empty item", input: `a,"",b`, want: []string{"a", "", "b"}},
		{name: "leading separator", input: ",a", want: []string{"a"}},
		{name: "bytes literal", input: "a,bytes{AQID}", want: []string{"a", "AQID"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tok.Tokenize(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, res.Values()); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizer_Options(t *testing.T) {
	tok := newTestTokenizer(t, Options{Closer: ']', Deactivated: "="})

	res, err := tok.Tokenize("a=b,c] trailing")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Token{value("a=b", 0), sep(3), value("c", 4)}, res.Tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	if res.End != 5 {
		t.Errorf("End = %d, want 5", res.End)
	}
}

func TestTokenizer_MaxInputLength(t *testing.T) {
	tok := newTestTokenizer(t, Options{MaxInputLength: 3})

	if _, err := tok.Tokenize("äöü"); err != nil {
		t.Errorf("three runes should fit: %v", err)
	}

	_, err := tok.Tokenize("abcd")
	if !mdwerror.HasCode(err, mdwerror.CodeInputTooLong) {
		t.Errorf("Tokenize() = %v, want CodeInputTooLong", err)
	}
}

func TestTokenizer_ErrorWrapping(t *testing.T) {
	tok := newTestTokenizer(t, Options{})

	_, err := tok.Tokenize(`a,"bc`)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsKind(err, UnterminatedQuote) {
		t.Errorf("KindOf() = %v, want UnterminatedQuote", KindOf(err))
	}
	if !mdwerror.HasCode(err, mdwerror.CodeUnterminated) {
		t.Errorf("code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeUnterminated)
	}

	mdwErr, ok := err.(*mdwerror.Error)
	if !ok {
		t.Fatalf("error type %T, want *mdwerror.Error", err)
	}
	if pos, _ := mdwErr.Detail("position"); pos != 5 {
		t.Errorf("position detail = %v, want 5", pos)
	}
	if state, _ := mdwErr.Detail("state"); state != QuotesExcludedID {
		t.Errorf("state detail = %v, want %s", state, QuotesExcludedID)
	}
	if mdwErr.Severity() != mdwerror.SeverityLow {
		t.Errorf("severity = %v, want low", mdwErr.Severity())
	}
}

func TestTokenizer_Logging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  mdwlog.LevelDebug,
		Format: mdwlog.FormatText,
		Output: buf,
	})
	tok := newTestTokenizer(t, Options{Logger: logger})

	if _, err := tok.Tokenize("a,b"); err != nil {
		t.Fatal(err)
	}
	if _, err := tok.Tokenize(`"a`); err == nil {
		t.Fatal("expected error")
	}

	out := buf.String()
	for _, want := range []string{
		"Starting tokenizing",
		"Tokenizing completed successfully",
		"tokens=3",
		"[WARN]",
		"Tokenizing failed",
		"component=argparse",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Entered state") {
		t.Error("state transitions logged without Trace")
	}
}

func TestTokenizer_Trace(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  mdwlog.LevelTrace,
		Format: mdwlog.FormatText,
		Output: buf,
	})
	tok := newTestTokenizer(t, Options{Logger: logger, Trace: true})

	res, err := tok.Tokenize("a=b")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) != 3 {
		t.Errorf("tracing changed the result: %v", res.Tokens)
	}

	out := buf.String()
	for _, want := range []string{
		"Entered state",
		"Leaving state",
		"state=" + ArgumentValueInitialID,
		"state=" + NameValueSeparatorID,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %q", want)
		}
	}
}

func TestTokenizer_Concurrent(t *testing.T) {
	tok := newTestTokenizer(t, Options{})
	inputs := []string{"a,b,c", `x="y"`, "bytes{AQ}", "${p{q}},r", "k=v,w"}

	want := make([][]Token, len(inputs))
	for i, in := range inputs {
		res, err := tok.Tokenize(in)
		if err != nil {
			t.Fatal(err)
		}
		want[i] = res.Tokens
	}

	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, in := range inputs {
				res, err := tok.Tokenize(in)
				if err != nil {
					errs <- err.Error()
					return
				}
				if diff := cmp.Diff(want[i], res.Tokens); diff != "" {
					errs <- diff
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}
