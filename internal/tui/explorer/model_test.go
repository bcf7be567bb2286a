package explorer

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/cliparse/foundation/argparse"
	"github.com/msto63/cliparse/internal/history"
)

func newTestModel(t *testing.T, store history.Store) Model {
	t.Helper()
	m, err := New(Config{Store: store, HistoryLimit: 10})
	require.NoError(t, err)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func press(t *testing.T, m Model, key tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: key})
	return updated.(Model), cmd
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(Config{Options: argparse.Options{Closer: 'x'}})
	assert.Error(t, err)
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, "Loading explorer...", m.View())
}

func TestModel_TokenizesWhileTyping(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(m, "a=1,b")

	require.NoError(t, m.err)
	require.NotNil(t, m.result)
	assert.Equal(t, []string{"a", "1", "b"}, m.result.Values())

	view := m.View()
	assert.Contains(t, view, "cliparse explorer")
	assert.Contains(t, view, "5 tokens")
}

func TestModel_ShowsErrors(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(m, `"open`)

	require.Error(t, m.err)
	assert.True(t, argparse.IsKind(m.err, argparse.UnterminatedQuote))
	assert.Nil(t, m.result)
	assert.Contains(t, m.View(), "UnterminatedQuote")
}

func TestModel_ToggleAssignment(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(m, "k=v")
	require.Len(t, m.result.Tokens, 3)
	first := m.result

	m, _ = press(t, m, tea.KeyCtrlD)
	assert.Equal(t, "=", m.options.Deactivated)
	require.NoError(t, m.err)
	assert.Equal(t, []string{"k=v"}, m.result.Values())
	assert.Contains(t, m.View(), "'=' is content")

	m, _ = press(t, m, tea.KeyCtrlD)
	assert.Empty(t, m.options.Deactivated)
	assert.Len(t, m.result.Tokens, 3)

	// the second toggle is served from the memoized outcomes
	assert.Same(t, first, m.result)
}

func TestModel_MemoizesFailures(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(m, `"open`)
	require.Error(t, m.err)
	first := m.err

	m, _ = press(t, m, tea.KeyCtrlD)
	m, _ = press(t, m, tea.KeyCtrlD)
	assert.Same(t, first, m.err)
	assert.Equal(t, 3, m.outcomes.Len())
}

func TestModel_EnterSavesHistory(t *testing.T) {
	store := history.NewMemoryStore()
	m := newTestModel(t, store)
	m = typeText(m, "x,y")

	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)

	msg := cmd()
	saved, ok := msg.(historySavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.True(t, saved.entry.OK)
	assert.Equal(t, 3, saved.entry.TokenCount)

	updated, _ := m.Update(msg)
	m = updated.(Model)
	assert.Equal(t, []string{"x,y"}, m.recall)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestModel_EnterSavesFailures(t *testing.T) {
	store := history.NewMemoryStore()
	m := newTestModel(t, store)
	m = typeText(m, "${x")

	_, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)

	saved := cmd().(historySavedMsg)
	require.NoError(t, saved.err)
	assert.False(t, saved.entry.OK)
	assert.Contains(t, saved.entry.Error, "UnterminatedExpression")
}

func TestModel_EnterIgnoresBlankInput(t *testing.T) {
	m := newTestModel(t, history.NewMemoryStore())
	_, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
}

func TestModel_HistoryRecall(t *testing.T) {
	store := history.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, &history.Entry{Input: "first"}))
	require.NoError(t, store.Add(ctx, &history.Entry{Input: "second"}))

	m := newTestModel(t, store)
	updated, _ := m.Update(m.loadHistory())
	m = updated.(Model)
	require.Equal(t, []string{"second", "first"}, m.recall)

	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "second", m.input.Value())
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "first", m.input.Value())
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "first", m.input.Value())

	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, "second", m.input.Value())
	m, _ = press(t, m, tea.KeyDown)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, -1, m.recallIdx)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := press(t, m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
