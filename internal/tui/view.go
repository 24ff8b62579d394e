package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/tui/components"
	"github.com/thenoetrevino/dealboard/internal/tui/notifications"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
)

// chromeLines is the header, the notification line and the status bar
const chromeLines = 3

// View renders the current mode
func (m Model) View() string {
	switch m.ui.Mode() {
	case state.HelpMode:
		return m.viewHelp()
	case state.DealViewMode:
		return m.viewDeal()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewBoard())
	b.WriteString("\n")
	b.WriteString(m.viewNotification())
	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewHeader() string {
	title := components.TitleStyle.Render("dealboard") + "  " + m.pipelineLabel()
	if m.board.StaleStages {
		title += "  " + components.SubtleStyle.Render("(stages loading)")
	}
	return title
}

func (m Model) pipelineLabel() string {
	switch {
	case m.board.Pipeline != nil:
		return fmt.Sprintf("%s (#%d)", m.board.Pipeline.Name, m.board.Pipeline.ID)
	case m.board.PipelineID != nil:
		return fmt.Sprintf("#%d", *m.board.PipelineID)
	default:
		return "No pipeline (legacy deals)"
	}
}

func (m Model) viewBoard() string {
	if m.resolving {
		return components.SubtleStyle.Render("Loading pipelines…")
	}
	if len(m.board.Columns) == 0 {
		msg := components.SubtleStyle.Render("No stages to show. Press " +
			m.keys.NextPipeline.Help().Key + " to pick a pipeline or " +
			m.keys.Refresh.Help().Key + " to retry.")
		if banners := notifications.RenderAll(m.app.Notifications.All(), 60); banners != "" {
			msg = lipgloss.JoinVertical(lipgloss.Left, msg, banners)
		}
		return msg
	}

	start := m.ui.ViewportOffset()
	end := min(start+m.ui.ViewportSize(), len(m.board.Columns))
	if m.ui.Width() == 0 {
		end = len(m.board.Columns)
	}

	dragging := m.ui.Mode() == state.DragMode && m.carrying != nil
	height := m.columnHeight()

	cols := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		col := m.board.Columns[i]
		selected := i == m.ui.SelectedColumn()
		props := components.ColumnProps{
			Column:       col,
			Currency:     m.currency(),
			Selected:     selected,
			SelectedDeal: m.ui.SelectedDeal(),
			DropTarget:   dragging && selected,
			Pending:      m.app.Drag.InFlight,
			Height:       height,
			ScrollOffset: m.ui.ScrollOffset(col.Stage.ID),
		}
		if dragging {
			props.CarriedDeal = m.carrying.DealID
		}
		cols = append(cols, components.RenderColumn(props))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// viewNotification shows the newest live notification on a single line
func (m Model) viewNotification() string {
	all := m.app.Notifications.All()
	if len(all) == 0 {
		return ""
	}
	last := all[len(all)-1]
	msg := last.Message
	if len(all) > 1 {
		msg = fmt.Sprintf("%s (+%d)", msg, len(all)-1)
	}
	return notifications.RenderInline(notifications.FromLevel(last.Level), msg)
}

func (m Model) viewStatusBar() string {
	shown := 0
	for _, col := range m.board.Columns {
		shown += len(col.Deals)
	}

	props := components.StatusBarProps{
		Mode:     m.ui.Mode().String(),
		Pipeline: m.pipelineLabel(),
		Shown:    shown,
		Total:    m.board.Total,
		Hidden:   m.board.Hidden,
		Filters:  m.filters,
		Width:    m.ui.Width(),
	}
	if m.ui.Mode() == state.SearchMode || m.ui.Mode() == state.OwnerFilterMode {
		props.Input = m.input.View()
	}
	return components.RenderStatusBar(props)
}

func (m Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(components.TitleStyle.Render("Keys"))
	for _, group := range m.keys.HelpGroups() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "\n%-8s %s", h.Key, components.SubtleStyle.Render(h.Desc))
		}
	}
	return components.HelpBoxStyle.Render(b.String())
}

func (m Model) viewDeal() string {
	deal, ok := m.currentDeal()
	if !ok {
		return components.HelpBoxStyle.Render("No deal selected")
	}

	width := 70
	if m.ui.Width() > 0 {
		width = min(width, max(m.ui.Width()-8, 20))
	}

	lines := []string{
		components.TitleStyle.Render(fmt.Sprintf("#%d %s", deal.ID, deal.Name)),
		"",
		field("Stage", stageName(deal, m.app.Board.Stages())),
		field("Value", components.FormatAmount(deal.Value, m.currency())),
		field("Company", deal.Company),
		field("Contact", deal.Contact),
		field("Email", deal.Email),
		field("Phone", deal.Phone),
	}
	if deal.OwnerID != nil {
		lines = append(lines, field("Owner", fmt.Sprintf("%d", deal.OwnerID.ToInt())))
	}
	lines = append(lines, "", components.RenderNotes(components.NotesProps{Notes: deal.Notes, Width: width}))

	return components.DealViewStyle.Width(width + 4).Render(strings.Join(lines, "\n"))
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return components.SubtleStyle.Render(fmt.Sprintf("%-8s", label)) + " " + value
}

func stageName(d models.Deal, stages []models.Stage) string {
	if d.StageName != "" {
		return d.StageName
	}
	if name := classify.ResolveName(d, stages); name != "" {
		return name
	}
	if d.LegacyStatus != "" {
		return d.LegacyStatus
	}
	return "unplaced"
}
