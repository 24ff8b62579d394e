// Package components provides the board's rendering pieces: columns, deal
// cards and the status bar. Call InitStyles after theme.Init.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/dealboard/internal/tui/theme"
)

// These are cached to avoid recomputing on every redraw.
var (
	// ColumnStyle defines the appearance of board columns
	ColumnStyle lipgloss.Style

	// CardStyle defines the appearance of deal cards
	CardStyle lipgloss.Style

	// TitleStyle defines the appearance of titles (column names, app header)
	TitleStyle lipgloss.Style

	// SubtleStyle renders secondary text
	SubtleStyle lipgloss.Style

	// ValueStyle renders deal amounts
	ValueStyle lipgloss.Style

	// StatusBarStyle is the bottom bar background
	StatusBarStyle lipgloss.Style

	// ModeStyle renders the mode chip in the status bar
	ModeStyle lipgloss.Style

	// HelpBoxStyle frames the help screen
	HelpBoxStyle lipgloss.Style

	// DealViewStyle frames the full deal view
	DealViewStyle lipgloss.Style
)

func init() {
	InitStyles()
}

// InitStyles rebuilds every style from the current theme colors
func InitStyles() {
	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColumnBorder)).
		Padding(0, 1).
		Width(ColumnContentWidth + 2) // lipgloss counts padding inside Width

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.CardBorder)).
		Width(CardContentWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Value))

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal))

	ModeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Highlight)).
		Padding(0, 1)

	HelpBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Highlight)).
		Padding(1, 2)

	DealViewStyle = HelpBoxStyle.
		BorderForeground(lipgloss.Color(theme.SelectedBorder))
}
