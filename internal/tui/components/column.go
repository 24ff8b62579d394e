package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/tui/theme"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ColumnProps configures RenderColumn
type ColumnProps struct {
	Column   classify.Column
	Currency string
	Selected bool
	// SelectedDeal is the cursor index within this column, ignored unless Selected
	SelectedDeal int
	// DropTarget highlights the column a carried card would land in
	DropTarget bool
	// CarriedDeal is the id of the card being dragged, zero when none
	CarriedDeal types.DealID
	// Pending reports whether a deal's move is in flight
	Pending func(types.DealID) bool
	// Height is the total box height, zero for auto
	Height       int
	ScrollOffset int
}

// VisibleCards returns how many cards fit in a column of the given height
func VisibleCards(height int) int {
	if height <= 0 {
		return 1 << 30
	}
	return max((height-columnOverhead)/CardHeight, 1)
}

// RenderColumn renders a stage title, its deal count and the visible cards
//
//	{Stage} ({count})  {probability}%
//	▲ more above
//	{Card 1}
//	{Card 2}
//	▼ more below
func RenderColumn(p ColumnProps) string {
	deals := p.Column.Deals
	stage := p.Column.Stage

	header := fmt.Sprintf("%s (%d)", stage.Name, len(deals))
	if stage.Probability > 0 {
		header += fmt.Sprintf("  %g%%", stage.Probability)
	}
	header = truncate.StringWithTail(header, ColumnContentWidth, "…")

	titleStyle := TitleStyle
	if stage.Color != "" {
		titleStyle = titleStyle.Foreground(lipgloss.Color(stage.Color))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")

	if len(deals) == 0 {
		b.WriteString(SubtleStyle.Italic(true).Render("No deals"))
	} else {
		visible := VisibleCards(p.Height)
		offset := min(max(p.ScrollOffset, 0), len(deals)-1)
		end := min(offset+visible, len(deals))

		if offset > 0 {
			b.WriteString(SubtleStyle.Render("▲ more above"))
		}
		b.WriteString("\n")

		for i, d := range deals[offset:end] {
			idx := offset + i
			b.WriteString(RenderCard(CardProps{
				Deal:     d,
				Currency: p.Currency,
				Selected: p.Selected && idx == p.SelectedDeal,
				Carried:  p.CarriedDeal != 0 && d.ID == p.CarriedDeal,
				Pending:  p.Pending != nil && p.Pending(d.ID),
			}))
			b.WriteString("\n")
		}

		if end < len(deals) {
			b.WriteString(SubtleStyle.Render("▼ more below"))
		}
	}

	style := ColumnStyle
	switch {
	case p.DropTarget:
		style = style.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(theme.DropTarget))
	case p.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if p.Height > 0 {
		style = style.Height(p.Height - 2)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}
