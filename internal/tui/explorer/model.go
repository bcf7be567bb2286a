// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     explorer
// Description: Bubbletea model for interactively tokenizing argument values
// Author:      Mike Stoffels
// Created:     2025-02-20
// License:     MIT
// ============================================================================

package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/cliparse/foundation/argparse"
	"github.com/msto63/cliparse/internal/history"
	"github.com/msto63/cliparse/internal/tui"
	"github.com/msto63/cliparse/pkg/core/cache"
)

// storeTimeout bounds every history operation started from the UI
const storeTimeout = 3 * time.Second

// Config holds explorer configuration
type Config struct {
	// Options for the tokenizer; Deactivated may be toggled at runtime
	Options argparse.Options

	// Store records entered inputs; nil disables the history
	Store history.Store

	// HistoryLimit is the number of inputs loaded for recall
	HistoryLimit int

	// CacheSize bounds the memoized tokenizer outcomes
	CacheSize int
}

// outcome is a memoized Tokenize result
type outcome struct {
	result *argparse.Result
	err    error
}

// Model is the main Bubbletea model for the explorer
type Model struct {
	// State
	width  int
	height int
	ready  bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Tokenizer state
	options   argparse.Options
	tokenizer *argparse.Tokenizer
	result    *argparse.Result
	err       error
	outcomes  *cache.Cache[string, outcome]

	// History state
	store        history.Store
	historyLimit int
	recall       []string // most recent first
	recallIdx    int      // -1 while editing a new input
	status       string
	storeErr     error
}

// New creates a new explorer model
func New(cfg Config) (Model, error) {
	tokenizer, err := argparse.New(cfg.Options)
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = `name="value",list=a\,b`
	ti.Prompt = "› "
	ti.CharLimit = cfg.Options.MaxInputLength
	ti.Focus()

	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 100
	}

	m := Model{
		input:        ti,
		options:      cfg.Options,
		tokenizer:    tokenizer,
		outcomes:     cache.New[string, outcome](cache.Config{MaxItems: cfg.CacheSize}),
		store:        cfg.Store,
		historyLimit: cfg.HistoryLimit,
		recallIdx:    -1,
	}
	m.retokenize()
	return m, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.loadHistory,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 5 // Title + input box
		footerHeight := 3 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()

	case historyLoadedMsg:
		if msg.err != nil {
			m.storeErr = msg.err
			break
		}
		m.recall = m.recall[:0]
		for _, e := range msg.entries {
			m.recall = append(m.recall, e.Input)
		}

	case historySavedMsg:
		if msg.err != nil {
			m.storeErr = msg.err
			break
		}
		m.storeErr = nil
		m.recall = append([]string{msg.entry.Input}, m.recall...)
		m.status = fmt.Sprintf("saved %s", shortID(msg.entry.ID))
	}

	// Update viewport
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		value := m.input.Value()
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.recallIdx = -1
		return m, m.saveEntry(value, m.result, m.err)

	case "up":
		if m.recallIdx+1 < len(m.recall) {
			m.recallIdx++
			m.setInput(m.recall[m.recallIdx])
		}
		return m, nil

	case "down":
		if m.recallIdx > 0 {
			m.recallIdx--
			m.setInput(m.recall[m.recallIdx])
		} else if m.recallIdx == 0 {
			m.recallIdx = -1
			m.setInput("")
		}
		return m, nil

	case "ctrl+d":
		m.toggleAssignment()
		return m, nil

	case "pgup":
		m.viewport.ViewUp()
		return m, nil

	case "pgdown":
		m.viewport.ViewDown()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.retokenize()
	}
	return m, cmd
}

// setInput replaces the input text and tokenizes it
func (m *Model) setInput(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.retokenize()
}

// toggleAssignment switches '=' between assignment and plain content
func (m *Model) toggleAssignment() {
	if strings.ContainsRune(m.options.Deactivated, '=') {
		m.options.Deactivated = strings.ReplaceAll(m.options.Deactivated, "=", "")
	} else {
		m.options.Deactivated += "="
	}

	tokenizer, err := argparse.New(m.options)
	if err != nil {
		m.err = err
		return
	}
	m.tokenizer = tokenizer
	m.retokenize()
}

// retokenize runs the tokenizer over the current input. Outcomes are keyed
// by the deactivated set since it is the only option changing at runtime.
func (m *Model) retokenize() {
	input := m.input.Value()
	key := m.options.Deactivated + "\x00" + input

	// failures are part of the outcome, so they are memoized too
	o, _ := m.outcomes.GetOrSet(key, func() (outcome, error) {
		result, err := m.tokenizer.Tokenize(input)
		return outcome{result: result, err: err}, nil
	})
	m.result, m.err = o.result, o.err
	m.updateViewportContent()
}

// updateViewportContent renders the result into the viewport
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderResult())
	m.viewport.GotoTop()
}

func (m Model) renderResult() string {
	if m.err != nil {
		var b strings.Builder
		var pe *argparse.ParseError
		if errors.As(m.err, &pe) {
			b.WriteString(tui.RenderCaret(m.input.Value(), pe.Position))
			b.WriteString("\n\n")
		}
		b.WriteString(tui.RenderError(m.err.Error()))
		return b.String()
	}
	if m.result == nil {
		return ""
	}

	out := tui.RenderTokens(m.result.Tokens)
	if m.options.Closer != 0 {
		out += "\n\n" + tui.SubtitleStyle.Render(fmt.Sprintf("stopped at position %d", m.result.End))
	}
	return out
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading explorer..."
	}

	var b strings.Builder

	b.WriteString(tui.RenderTitle("cliparse explorer"))
	b.WriteString("\n")
	b.WriteString(tui.FocusedInputStyle.Width(m.width - 4).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(tui.BoxStyle.Width(m.width - 4).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(tui.RenderHelp("enter: save • ↑/↓: history • ctrl+d: toggle '=' • esc: quit"))

	return b.String()
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.err != nil {
		label := "error"
		if kind := argparse.KindOf(m.err); kind != 0 {
			label = kind.String()
		}
		parts = append(parts, tui.StatusErrorStyle.Render(label))
	} else if m.result != nil {
		parts = append(parts, tui.StatusOKStyle.Render(fmt.Sprintf("%d tokens", len(m.result.Tokens))))
	}

	if strings.ContainsRune(m.options.Deactivated, '=') {
		parts = append(parts, "'=' is content")
	} else {
		parts = append(parts, "'=' assigns")
	}

	if m.storeErr != nil {
		parts = append(parts, tui.StatusErrorStyle.Render("history: "+m.storeErr.Error()))
	} else if m.status != "" {
		parts = append(parts, m.status)
	}

	return tui.StatusBarStyle.Render(strings.Join(parts, " │ "))
}

// loadHistory loads recent inputs for recall
func (m Model) loadHistory() tea.Msg {
	if m.store == nil {
		return historyLoadedMsg{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entries, err := m.store.Recent(ctx, m.historyLimit)
	return historyLoadedMsg{entries: entries, err: err}
}

// saveEntry records an input together with its outcome
func (m Model) saveEntry(value string, result *argparse.Result, tokErr error) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		entry := &history.Entry{Input: value, OK: tokErr == nil}
		if tokErr != nil {
			entry.Error = tokErr.Error()
		} else if result != nil {
			entry.TokenCount = len(result.Tokens)
		}
		if store == nil {
			return historySavedMsg{entry: entry}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return historySavedMsg{entry: entry, err: store.Add(ctx, entry)}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the explorer TUI
func Run(cfg Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
