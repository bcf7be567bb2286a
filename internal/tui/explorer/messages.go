// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     explorer
// Description: Message types for async operations in the explorer
// Author:      Mike Stoffels
// Created:     2025-02-20
// License:     MIT
// ============================================================================

package explorer

import (
	"github.com/msto63/cliparse/internal/history"
)

// Message types for tea.Cmd async operations

// historyLoadedMsg is sent when recent inputs are loaded from the store
type historyLoadedMsg struct {
	entries []*history.Entry
	err     error
}

// historySavedMsg is sent when an input has been recorded
type historySavedMsg struct {
	entry *history.Entry
	err   error
}
