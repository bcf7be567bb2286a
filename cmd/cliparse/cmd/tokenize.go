// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     cmd
// Description: CLI command for tokenizing argument values
// Author:      Mike Stoffels
// Created:     2025-02-21
// License:     MIT
// ============================================================================

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/cliparse/foundation/argparse"
	mdwlog "github.com/msto63/cliparse/foundation/core/log"
	"github.com/msto63/cliparse/internal/history"
	"github.com/msto63/cliparse/internal/tui"
)

var (
	tokenizeFormat     string
	tokenizeDeactivate string
	tokenizeCloser     string
	tokenizeTrace      bool
	tokenizeNoHistory  bool
)

var tokenizeCmd = &cobra.Command{
	Use:     "tokenize [value...]",
	Aliases: []string{"tok", "t"},
	Short:   "Tokenize argument values",
	Long: `Tokenizes each argument as one argument value. Without arguments,
every line read from stdin is tokenized.

Examples:
  cliparse tokenize 'name="John Doe",tags=a\,b'
  cliparse tokenize --format json '${env.HOME}/bin'
  cliparse tokenize --deactivate = 'k=v'
  cliparse tokenize --closer ] 'a,b],c'
  echo 'bytes{0x01,0x02}' | cliparse tokenize`,
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)

	tokenizeCmd.Flags().StringVarP(&tokenizeFormat, "format", "f", "", "output format: text or json (default from config)")
	tokenizeCmd.Flags().StringVarP(&tokenizeDeactivate, "deactivate", "d", "", "characters stripped of their special meaning, e.g. '='")
	tokenizeCmd.Flags().StringVar(&tokenizeCloser, "closer", "", "closing bracket of an enclosing list or object")
	tokenizeCmd.Flags().BoolVar(&tokenizeTrace, "trace", false, "log every state transition")
	tokenizeCmd.Flags().BoolVar(&tokenizeNoHistory, "no-history", false, "do not record inputs in the history")
}

// tokenOutput is the JSON form of a token
type tokenOutput struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Pos   int    `json:"pos"`
}

// resultOutput is the JSON form of one tokenized input
type resultOutput struct {
	Input    string        `json:"input"`
	Tokens   []tokenOutput `json:"tokens,omitempty"`
	End      int           `json:"end"`
	Error    string        `json:"error,omitempty"`
	Position *int          `json:"position,omitempty"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format := appConfig.Output.Format
	if tokenizeFormat != "" {
		format = tokenizeFormat
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported output format %q", format)
	}

	log := logger
	if tokenizeTrace {
		log = logger.WithLevel(mdwlog.LevelTrace)
	}
	opts, err := tokenizerOptions(log, tokenizeDeactivate, tokenizeCloser, tokenizeTrace)
	if err != nil {
		return err
	}
	tokenizer, err := argparse.New(opts)
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs, err = readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	var entries []*history.Entry
	var outputs []resultOutput
	failed := 0

	for _, input := range inputs {
		result, tokErr := tokenizer.Tokenize(input)
		entry := &history.Entry{Input: input, OK: tokErr == nil}
		ro := resultOutput{Input: input}

		if tokErr != nil {
			failed++
			entry.Error = tokErr.Error()
			ro.Error = tokErr.Error()
			var pe *argparse.ParseError
			if errors.As(tokErr, &pe) {
				pos := pe.Position
				ro.Position = &pos
			}
		} else {
			entry.TokenCount = len(result.Tokens)
			ro.End = result.End
			for _, t := range result.Tokens {
				ro.Tokens = append(ro.Tokens, tokenOutput{Kind: t.Kind.String(), Value: t.Value, Pos: t.Pos})
			}
		}
		entries = append(entries, entry)

		if format == "json" {
			outputs = append(outputs, ro)
			continue
		}
		printTextResult(out, input, result, tokErr, ro.Position)
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outputs); err != nil {
			return err
		}
	}

	if !tokenizeNoHistory {
		recordHistory(context.Background(), entries)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to tokenize", failed, len(inputs))
	}
	return nil
}

func printTextResult(w io.Writer, input string, result *argparse.Result, err error, pos *int) {
	if err != nil {
		if pos != nil {
			fmt.Fprintln(w, tui.RenderCaret(input, *pos))
		}
		fmt.Fprintln(w, tui.RenderError(err.Error()))
		return
	}

	if appConfig.Output.NoColor {
		for _, t := range result.Tokens {
			fmt.Fprintln(w, t.String())
		}
		if len(result.Tokens) == 0 {
			fmt.Fprintln(w, "(no tokens)")
		}
		return
	}
	fmt.Fprintln(w, tui.RenderTokens(result.Tokens))
}

// readLines reads non-empty lines from r
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
