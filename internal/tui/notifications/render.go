package notifications

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/thenoetrevino/dealboard/internal/notifications"
)

// Render renders a notification banner based on severity level. Messages
// longer than maxWidth are wrapped; zero means no limit.
func Render(severity Severity, message string, maxWidth int) string {
	style := severity.style()

	if maxWidth > 0 {
		message = wordwrap.String(message, maxWidth)
	}

	headerText := style.icon + " " + style.title
	width := max(lipgloss.Width(headerText), lipgloss.Width(message))

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.fg)).
		Bold(true).
		Width(width).
		Render(headerText)

	messageContent := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.fg)).
		Width(width).
		Render(message)

	content := lipgloss.JoinVertical(lipgloss.Left, header, messageContent)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(style.bg)).
		Background(lipgloss.Color(style.bg)).
		Padding(0, 1).
		Render(content)
}

// RenderAll stacks banners for every live notification, newest last
func RenderAll(items []notifications.Notification, maxWidth int) string {
	if len(items) == 0 {
		return ""
	}
	banners := make([]string, len(items))
	for i, n := range items {
		banners[i] = Render(FromLevel(n.Level), n.Message, maxWidth)
	}
	return lipgloss.JoinVertical(lipgloss.Right, banners...)
}

// RenderInline renders a compact single-line notification for the status bar
func RenderInline(severity Severity, message string) string {
	style := severity.style()

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.fg)).
		Background(lipgloss.Color(style.bg)).
		Padding(0, 1).
		Render(style.icon + " " + message)
}
