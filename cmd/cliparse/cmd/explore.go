// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the interactive explorer TUI
// Author:      Mike Stoffels
// Created:     2025-02-21
// License:     MIT
// ============================================================================

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/cliparse/foundation/core/log"
	"github.com/msto63/cliparse/internal/tui/explorer"
)

var (
	exploreDeactivate string
	exploreCloser     string
)

var exploreCmd = &cobra.Command{
	Use:     "explore",
	Aliases: []string{"tui", "x"},
	Short:   "Interactively tokenize argument values",
	Long: `Starts the interactive explorer. Tokens are shown while typing,
errors are marked at their position.

Key bindings:
  Enter       Save input to the history
  Up/Down     Recall previous inputs
  Ctrl+D      Toggle '=' between assignment and content
  PgUp/PgDn   Scroll
  Esc/Ctrl+C  Quit`,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().StringVarP(&exploreDeactivate, "deactivate", "d", "", "characters stripped of their special meaning")
	exploreCmd.Flags().StringVar(&exploreCloser, "closer", "", "closing bracket of an enclosing list or object")
}

func runExplore(cmd *cobra.Command, args []string) error {
	// The alternate screen owns the terminal
	opts, err := tokenizerOptions(mdwlog.Discard(), exploreDeactivate, exploreCloser, false)
	if err != nil {
		return err
	}

	store, err := openHistory(context.Background())
	if err != nil {
		logger.WarnWithErr("History unavailable", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return explorer.Run(explorer.Config{
		Options:      opts,
		Store:        store,
		HistoryLimit: appConfig.History.Limit,
	})
}
