// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     cmd
// Description: CLI commands for the input history
// Author:      Mike Stoffels
// Created:     2025-02-21
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/cliparse/internal/history"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show and manage the input history",
	Long: `Shows the most recent tokenized inputs.

Examples:
  cliparse history
  cliparse history --limit 5
  cliparse history show 3f2a9c1e-...
  cliparse history clear`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show (0 for all)")
	historyCmd.PersistentFlags().StringVarP(&historyFormat, "format", "f", "", "output format: text or json (default from config)")
}

// withHistory opens the store for the duration of f
func withHistory(f func(ctx context.Context, store history.Store) error) error {
	ctx := context.Background()
	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is disabled in the configuration")
	}
	defer store.Close()
	return f(ctx, store)
}

func outputFormat() string {
	if historyFormat != "" {
		return historyFormat
	}
	return appConfig.Output.Format
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withHistory(func(ctx context.Context, store history.Store) error {
		entries, err := store.Recent(ctx, historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outputFormat() == "json" {
			return writeJSON(out, entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No history entries.")
			return nil
		}
		for _, e := range entries {
			printEntryLine(out, e)
		}
		return nil
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withHistory(func(ctx context.Context, store history.Store) error {
		entry, err := store.Get(ctx, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if outputFormat() == "json" {
			return writeJSON(out, entry)
		}

		fmt.Fprintf(out, "ID:      %s\n", entry.ID)
		fmt.Fprintf(out, "Created: %s\n", entry.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Input:   %s\n", entry.Input)
		if entry.OK {
			fmt.Fprintf(out, "Tokens:  %d\n", entry.TokenCount)
		} else {
			fmt.Fprintf(out, "Error:   %s\n", entry.Error)
		}
		return nil
	})
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	return withHistory(func(ctx context.Context, store history.Store) error {
		deleted, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d history entries.\n", deleted)
		return nil
	})
}

func printEntryLine(w io.Writer, e *history.Entry) {
	status := "[+]"
	detail := fmt.Sprintf("%d tokens", e.TokenCount)
	if !e.OK {
		status = "[-]"
		detail = e.Error
	}
	id := e.ID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(w, "%s %s %s  %-30s %s\n",
		status, id, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Input, detail)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
