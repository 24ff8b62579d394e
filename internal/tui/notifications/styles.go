package notifications

import "github.com/thenoetrevino/dealboard/internal/tui/theme"

// banner describes how one severity is drawn. Colors are read from the
// theme on every call so a theme.Init after startup takes effect.
type banner struct {
	icon, title string
	fg, bg      string
}

func (s Severity) style() banner {
	switch s {
	case Warning:
		return banner{icon: "⚠", title: "Warning", fg: theme.WarningFg, bg: theme.WarningBg}
	case Error:
		return banner{icon: "✕", title: "Error", fg: theme.ErrorFg, bg: theme.ErrorBg}
	default:
		return banner{icon: "•", title: "Info", fg: theme.InfoFg, bg: theme.InfoBg}
	}
}
