// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     tui
// Description: Shared lipgloss styles and renderers for tokens and errors
// Author:      Mike Stoffels
// Created:     2025-02-20
// License:     MIT
// ============================================================================

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/cliparse/foundation/argparse"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorInfo      = lipgloss.Color("#06B6D4")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Box styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	// Status styles
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	// Input style
	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	// Token styles
	ValueTokenStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	BytesTokenStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	SeparatorTokenStyle = lipgloss.NewStyle().
				Foreground(colorAccent)

	AssignmentTokenStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	PositionStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Helper functions
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

func RenderError(err string) string {
	return ErrorMessageStyle.Render("Error: " + err)
}

func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}

// KindStyle returns the style used for tokens of kind
func KindStyle(kind argparse.Kind) lipgloss.Style {
	switch kind {
	case argparse.KindBytes:
		return BytesTokenStyle
	case argparse.KindListSeparator:
		return SeparatorTokenStyle
	case argparse.KindAssignment:
		return AssignmentTokenStyle
	default:
		return ValueTokenStyle
	}
}

// RenderToken renders one token as "KIND  "value"  @pos"
func RenderToken(tok argparse.Token) string {
	style := KindStyle(tok.Kind)
	return fmt.Sprintf("%s %s %s",
		style.Width(15).Render(tok.Kind.String()),
		style.Render(fmt.Sprintf("%q", tok.Value)),
		PositionStyle.Render(fmt.Sprintf("@%d", tok.Pos)))
}

// RenderTokens renders a token list, one token per line
func RenderTokens(tokens []argparse.Token) string {
	if len(tokens) == 0 {
		return SubtitleStyle.Render("(no tokens)")
	}
	lines := make([]string, len(tokens))
	for i, tok := range tokens {
		lines[i] = RenderToken(tok)
	}
	return strings.Join(lines, "\n")
}

// RenderCaret renders input with a caret under the rune at pos
func RenderCaret(input string, pos int) string {
	runes := []rune(input)
	if pos > len(runes) {
		pos = len(runes)
	}
	if pos < 0 {
		pos = 0
	}
	offset := lipgloss.Width(string(runes[:pos]))
	return input + "\n" + strings.Repeat(" ", offset) + ErrorMessageStyle.Render("^")
}
