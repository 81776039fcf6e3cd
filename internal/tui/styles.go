// Package tui provides an interactive history browser for fpm.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"fpm/internal/history"
)

// Color palette, kept in line with the CLI colors.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F3F4F6") // Light gray
	ColorBgAlt     = lipgloss.Color("#374151")
)

// kindColors maps each rollback kind to the color of its action tag.
var kindColors = map[history.Kind]lipgloss.Color{
	history.KindInstall: ColorSuccess,
	history.KindRemove:  ColorError,
	history.KindUpdate:  ColorWarning,
	history.KindOther:   ColorMuted,
}

// Styles contains the lipgloss styles used by the browser.
type Styles struct {
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	Timestamp        lipgloss.Style
	ID               lipgloss.Style

	Detail      lipgloss.Style
	DetailLabel lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() *Styles {
	s := &Styles{}

	s.Header = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBgAlt).
		Padding(0, 1).
		Bold(true)

	s.Footer = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	s.Title = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	s.Description = lipgloss.NewStyle().
		Foreground(ColorMuted)

	s.ListItem = lipgloss.NewStyle().
		PaddingLeft(2)

	s.ListItemSelected = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	s.Timestamp = lipgloss.NewStyle().
		Foreground(ColorMuted)

	s.ID = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	s.Detail = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	s.DetailLabel = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	s.Warning = lipgloss.NewStyle().
		Foreground(ColorWarning)

	s.Error = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	return s
}

// ActionStyle returns the style used for an action tag.
func ActionStyle(a history.Action) lipgloss.Style {
	color, ok := kindColors[a.Kind()]
	if !ok {
		color = ColorMuted
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true)
}
