package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"fpm/internal/history"
)

// reservedLines is the space taken by header, detail box and footer.
const reservedLines = 9

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

// Browser is a bubbletea model listing history entries newest first.
// Choosing an entry ends the program and records its 1-based id.
type Browser struct {
	log    *history.Log
	keys   KeyMap
	styles *Styles
	help   help.Model

	entries []history.Entry
	loaded  bool
	err     error

	width  int
	height int
	cursor int
	scroll int

	chosen   int
	quitting bool
}

// NewBrowser creates a browser over the given log.
func NewBrowser(hl *history.Log) *Browser {
	return &Browser{
		log:    hl,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return b.loadHistory
}

func (b *Browser) loadHistory() tea.Msg {
	entries, err := b.log.ReadAll()
	return historyLoadedMsg{entries: entries, err: err}
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		b.clampScroll()

	case historyLoadedMsg:
		b.loaded = true
		b.entries = msg.entries
		b.err = msg.err
		b.cursor = 0
		b.scroll = 0

	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	return b, nil
}

func (b *Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		b.quitting = true
		return b, tea.Quit
	case key.Matches(msg, b.keys.Up):
		b.move(-1)
	case key.Matches(msg, b.keys.Down):
		b.move(1)
	case key.Matches(msg, b.keys.PageUp):
		b.move(-b.visibleHeight())
	case key.Matches(msg, b.keys.PageDown):
		b.move(b.visibleHeight())
	case key.Matches(msg, b.keys.Home):
		b.move(-len(b.entries))
	case key.Matches(msg, b.keys.End):
		b.move(len(b.entries))
	case key.Matches(msg, b.keys.Rollback):
		if id := b.SelectedID(); id > 0 {
			b.chosen = id
			b.quitting = true
			return b, tea.Quit
		}
	}
	return b, nil
}

func (b *Browser) move(delta int) {
	if len(b.entries) == 0 {
		return
	}
	b.cursor += delta
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor >= len(b.entries) {
		b.cursor = len(b.entries) - 1
	}
	b.clampScroll()
}

func (b *Browser) clampScroll() {
	visible := b.visibleHeight()
	if b.cursor < b.scroll {
		b.scroll = b.cursor
	}
	if b.cursor >= b.scroll+visible {
		b.scroll = b.cursor - visible + 1
	}
}

func (b *Browser) visibleHeight() int {
	if h := b.height - reservedLines; h > 1 {
		return h
	}
	return 1
}

// entryAt maps a display row (0 = newest) to its entry and 1-based id.
func (b *Browser) entryAt(row int) (history.Entry, int) {
	idx := len(b.entries) - 1 - row
	return b.entries[idx], idx + 1
}

// SelectedID returns the 1-based id under the cursor, or 0 when the log is
// empty.
func (b *Browser) SelectedID() int {
	if len(b.entries) == 0 {
		return 0
	}
	_, id := b.entryAt(b.cursor)
	return id
}

// Chosen returns the id picked for rollback, or 0 if the user quit.
func (b *Browser) Chosen() int {
	return b.chosen
}

// View implements tea.Model.
func (b *Browser) View() string {
	if b.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(b.renderHeader())
	sb.WriteString("\n\n")

	switch {
	case !b.loaded:
		sb.WriteString(b.styles.Description.Render("Loading history..."))
		sb.WriteString("\n")
	case b.err != nil:
		sb.WriteString(b.styles.Error.Render("Failed to read history: " + b.err.Error()))
		sb.WriteString("\n")
	case len(b.entries) == 0:
		sb.WriteString(b.styles.Description.Render("No history found"))
		sb.WriteString("\n")
	default:
		sb.WriteString(b.renderList())
		sb.WriteString("\n")
		sb.WriteString(b.renderDetail())
		sb.WriteString("\n")
	}

	sb.WriteString(b.styles.Footer.Render(b.help.View(b.keys)))
	return sb.String()
}

func (b *Browser) renderHeader() string {
	title := b.styles.Header.Render(" fpm history ")
	right := b.styles.Description.Render(fmt.Sprintf("%d entries", len(b.entries)))

	padding := b.width - lipgloss.Width(title) - lipgloss.Width(right) - 1
	if padding < 1 {
		padding = 1
	}
	return title + strings.Repeat(" ", padding) + right
}

func (b *Browser) renderList() string {
	var sb strings.Builder

	end := b.scroll + b.visibleHeight()
	if end > len(b.entries) {
		end = len(b.entries)
	}

	for row := b.scroll; row < end; row++ {
		entry, id := b.entryAt(row)

		items := entry.JoinItems()
		if len(items) > 40 {
			items = items[:37] + "..."
		}

		line := fmt.Sprintf("%s  %s  %s  %s",
			b.styles.ID.Render(fmt.Sprintf("%4d", id)),
			b.styles.Timestamp.Render(entry.FormatTime()),
			ActionStyle(entry.Action).Render(fmt.Sprintf("%-16s", entry.Action)),
			items,
		)

		if row == b.cursor {
			sb.WriteString(b.styles.ListItemSelected.Render("> ") + line)
		} else {
			sb.WriteString(b.styles.ListItem.Render(line))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (b *Browser) renderDetail() string {
	entry, id := b.entryAt(b.cursor)

	var effect string
	switch entry.Action.Kind() {
	case history.KindInstall:
		effect = "remove " + entry.JoinItems()
	case history.KindRemove:
		effect = "install " + entry.JoinItems()
	case history.KindUpdate:
		effect = b.styles.Warning.Render("updates cannot be rolled back automatically")
	case history.KindOther:
		effect = b.styles.Warning.Render("no automatic rollback for " + string(entry.Action))
	}

	lines := []string{
		b.styles.DetailLabel.Render("Entry:    ") + fmt.Sprintf("#%d %s", id, entry.Action),
		b.styles.DetailLabel.Render("Recorded: ") + humanize.Time(entry.Timestamp),
		b.styles.DetailLabel.Render("Rollback: ") + effect,
	}
	return b.styles.Detail.Render(strings.Join(lines, "\n"))
}

// Run starts the browser and returns the id chosen for rollback, or 0 if
// the user quit without choosing.
func Run(hl *history.Log) (int, error) {
	b := NewBrowser(hl)
	p := tea.NewProgram(b, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return 0, err
	}
	return b.Chosen(), nil
}
