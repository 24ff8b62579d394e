package huhforms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/dealboard/internal/config/colors"
)

// CreateBoardTheme creates a huh theme matching the board's color scheme
func CreateBoardTheme(colorScheme colors.ColorScheme) *huh.Theme {
	colorScheme.ApplyDefaults()
	t := huh.ThemeBase()

	accent := lipgloss.Color(colorScheme.Accent)
	selected := lipgloss.Color(colorScheme.SelectedBorder)
	subtle := lipgloss.Color(colorScheme.Subtle)
	normal := lipgloss.Color(colorScheme.Normal)
	errorColor := lipgloss.Color(colorScheme.ErrorBg)
	title := lipgloss.Color(colorScheme.Title)

	// Focused field styles
	t.Focused.Base = t.Focused.Base.BorderForeground(accent)
	t.Focused.Title = t.Focused.Title.Foreground(title).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(subtle)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errorColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(selected)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(selected)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(normal)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(subtle)

	// Blurred field styles (inherit from focused but with hidden border)
	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(subtle)

	return t
}
