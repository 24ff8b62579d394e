package components

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/tui/theme"
)

// CardProps configures RenderCard
type CardProps struct {
	Deal     models.Deal
	Currency string
	Selected bool
	// Carried marks the card being dragged
	Carried bool
	// Pending marks a card whose move is still being persisted
	Pending bool
}

// RenderCard renders a single deal as a fixed-size card
//
//	┌────────────────────────┐
//	│ #1 Acme Rollout        │
//	│ Acme Corp              │
//	│ 12000 USD    owner 1   │
//	└────────────────────────┘
func RenderCard(p CardProps) string {
	d := p.Deal

	title := truncate.StringWithTail(fmt.Sprintf("#%d %s", d.ID, d.Name), CardContentWidth, "…")
	if p.Pending {
		title = truncate.StringWithTail(title, CardContentWidth-2, "…") + " ⟳"
	}

	company := d.Company
	if company == "" {
		company = "no company"
	}
	company = SubtleStyle.Render(truncate.StringWithTail(company, CardContentWidth, "…"))

	amount := ValueStyle.Render(FormatAmount(d.Value, p.Currency))
	owner := SubtleStyle.Render(ownerLabel(d))
	gap := max(CardContentWidth-lipgloss.Width(amount)-lipgloss.Width(owner), 1)
	footer := amount + fmt.Sprintf("%*s", gap, "") + owner

	style := CardStyle
	switch {
	case p.Carried:
		style = style.Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(theme.CarriedBorder))
	case p.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}

	return style.Render(lipgloss.NewStyle().Bold(p.Selected).Render(title) + "\n" + company + "\n" + footer)
}

// FormatAmount renders a deal value with its pipeline currency when known
func FormatAmount(v float64, currency string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

func ownerLabel(d models.Deal) string {
	if d.OwnerID == nil {
		return "unowned"
	}
	return "owner " + strconv.Itoa(d.OwnerID.ToInt())
}
