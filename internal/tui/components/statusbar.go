package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/dealboard/internal/filter"
)

// StatusBarProps configures RenderStatusBar
type StatusBarProps struct {
	Mode     string
	Pipeline string
	Shown    int
	Total    int
	Hidden   int
	Filters  filter.Filters
	// Input is the live text of the search or owner prompt
	Input string
	Width int
}

// RenderStatusBar renders the mode, pipeline name, deal counts and active
// filters on one line
func RenderStatusBar(p StatusBarProps) string {
	left := ModeStyle.Render(p.Mode) + " " + TitleStyle.Render(p.Pipeline)

	parts := []string{fmt.Sprintf("%d of %d deals", p.Shown, p.Total)}
	if p.Hidden > 0 {
		parts = append(parts, fmt.Sprintf("%d unplaced", p.Hidden))
	}
	if p.Input != "" {
		parts = append(parts, p.Input)
	} else if desc := describeFilters(p.Filters); desc != "" {
		parts = append(parts, desc)
	}
	right := SubtleStyle.Render(strings.Join(parts, " · "))

	gap := max(p.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func describeFilters(f filter.Filters) string {
	var parts []string
	if s := strings.TrimSpace(f.SearchText); s != "" {
		parts = append(parts, "search:"+s)
	}
	if s := strings.TrimSpace(f.Contact); s != "" {
		parts = append(parts, "contact:"+s)
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		parts = append(parts, "status:"+s)
	}
	if f.Owner != nil {
		parts = append(parts, fmt.Sprintf("owner:%d", f.Owner.ToInt()))
	}
	return strings.Join(parts, " ")
}
