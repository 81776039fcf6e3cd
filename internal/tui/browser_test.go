package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpm/internal/history"
)

func setupBrowser(t *testing.T, entries ...history.Entry) *Browser {
	t.Helper()

	hl := history.New(filepath.Join(t.TempDir(), "history.json"))
	for _, e := range entries {
		require.NoError(t, hl.Append(e.Action, e.Items))
	}

	b := NewBrowser(hl)
	b.Update(b.Init()())
	return b
}

func press(b *Browser, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = b.Update(msg)
	}
	return cmd
}

func threeEntries() []history.Entry {
	return []history.Entry{
		{Action: history.ActionInstall, Items: []string{"vim"}},
		{Action: history.ActionRemove, Items: []string{"nano"}},
		{Action: history.ActionUpdate, Items: []string{"system"}},
	}
}

func TestBrowserStartsAtNewest(t *testing.T) {
	b := setupBrowser(t, threeEntries()...)

	assert.Equal(t, 3, b.SelectedID())
	assert.Zero(t, b.Chosen())
}

func TestBrowserNavigation(t *testing.T) {
	b := setupBrowser(t, threeEntries()...)

	press(b, "down")
	assert.Equal(t, 2, b.SelectedID())

	press(b, "j", "j", "j")
	assert.Equal(t, 1, b.SelectedID(), "cursor stops at the oldest entry")

	press(b, "up")
	assert.Equal(t, 2, b.SelectedID())

	press(b, "k", "k")
	assert.Equal(t, 3, b.SelectedID(), "cursor stops at the newest entry")

	press(b, "G")
	assert.Equal(t, 1, b.SelectedID())

	press(b, "g")
	assert.Equal(t, 3, b.SelectedID())
}

func TestBrowserChooseEntry(t *testing.T) {
	b := setupBrowser(t, threeEntries()...)

	press(b, "down")
	cmd := press(b, "enter")

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 2, b.Chosen())
	assert.Empty(t, b.View())
}

func TestBrowserRollbackKey(t *testing.T) {
	b := setupBrowser(t, threeEntries()...)

	press(b, "G", "r")
	assert.Equal(t, 1, b.Chosen())
}

func TestBrowserQuitChoosesNothing(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		t.Run(k, func(t *testing.T) {
			b := setupBrowser(t, threeEntries()...)

			cmd := press(b, k)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Zero(t, b.Chosen())
		})
	}
}

func TestBrowserEmptyLog(t *testing.T) {
	b := setupBrowser(t)

	assert.Zero(t, b.SelectedID())
	cmd := press(b, "down", "enter")
	assert.Nil(t, cmd)
	assert.Zero(t, b.Chosen())
	assert.Contains(t, b.View(), "No history found")
}

func TestBrowserView(t *testing.T) {
	b := setupBrowser(t, threeEntries()...)
	b.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := b.View()
	assert.Contains(t, view, "3 entries")
	assert.Contains(t, view, "vim")
	assert.Contains(t, view, "nano")
	assert.Contains(t, view, "updates cannot be rolled back automatically")

	press(b, "G")
	assert.Contains(t, b.View(), "remove vim")
}

func TestBrowserScrollsWithCursor(t *testing.T) {
	var entries []history.Entry
	for i := 0; i < 20; i++ {
		entries = append(entries, history.Entry{Action: history.ActionInstall, Items: []string{"pkg"}})
	}
	b := setupBrowser(t, entries...)
	b.Update(tea.WindowSizeMsg{Width: 80, Height: reservedLines + 5})

	press(b, "G")
	assert.Equal(t, 1, b.SelectedID())
	assert.Equal(t, 15, b.scroll)

	press(b, "g")
	assert.Equal(t, 0, b.scroll)
}

func TestBrowserCorruptLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	b := NewBrowser(history.New(path))
	b.Update(b.Init()())

	assert.Contains(t, b.View(), "Failed to read history")
	assert.Zero(t, b.SelectedID())
}
