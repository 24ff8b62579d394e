// Package tui is the interactive deal board. It only presents the board
// core: every pipeline, filter and drag decision is made by internal/board
// and internal/drag.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/board"
	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/drag"
	"github.com/thenoetrevino/dealboard/internal/filter"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/tui/components"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
)

// Model represents the application state for the TUI
type Model struct {
	ctx  context.Context
	app  *app.App
	keys KeyMap

	ui      *state.UIState
	filters filter.Filters
	board   board.Board

	// carrying is the drag in hand while in DragMode
	carrying *drag.Drag

	input textinput.Model
	// saved restores the search text when a prompt is cancelled
	saved filter.Filters

	// resolving is true until the first pipeline resolution completes
	resolving bool
}

// New creates the board model. Nothing is fetched until Init runs.
func New(ctx context.Context, a *app.App, f filter.Filters) Model {
	input := textinput.New()
	input.CharLimit = 64
	input.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		ctx:       ctx,
		app:       a,
		keys:      NewKeyMap(a.Config.KeyMappings),
		ui:        state.NewUIState(),
		filters:   f,
		input:     input,
		resolving: true,
	}
	m.refresh()
	return m
}

// Init resolves the active pipeline and starts the notification ticker
func (m Model) Init() tea.Cmd {
	return tea.Batch(resolveCmd(m.ctx, m.app.Board), tickCmd())
}

// Board returns the board as last rendered
func (m Model) Board() board.Board {
	return m.board
}

// Mode returns the current interaction mode
func (m Model) Mode() state.Mode {
	return m.ui.Mode()
}

// Filters returns the active filters
func (m Model) Filters() filter.Filters {
	return m.filters
}

// refresh rebuilds the board from the core and keeps the cursor in range
func (m *Model) refresh() {
	m.board = m.app.Board.Board(m.filters)
	m.ui.Clamp(len(m.board.Columns), func(col int) int {
		return len(m.board.Columns[col].Deals)
	})
	if col, ok := m.currentColumn(); ok {
		m.ui.EnsureDealVisible(col.Stage.ID, components.VisibleCards(m.columnHeight()))
	}
}

// currentColumn returns the column under the cursor
func (m Model) currentColumn() (classify.Column, bool) {
	i := m.ui.SelectedColumn()
	if i < 0 || i >= len(m.board.Columns) {
		return classify.Column{}, false
	}
	return m.board.Columns[i], true
}

// currentDeal returns the deal under the cursor
func (m Model) currentDeal() (models.Deal, bool) {
	col, ok := m.currentColumn()
	if !ok {
		return models.Deal{}, false
	}
	i := m.ui.SelectedDeal()
	if i < 0 || i >= len(col.Deals) {
		return models.Deal{}, false
	}
	return col.Deals[i], true
}

func (m Model) currency() string {
	if m.board.Pipeline == nil {
		return ""
	}
	return m.board.Pipeline.Currency
}

// columnHeight is the height left for columns after the header and status bar
func (m Model) columnHeight() int {
	if m.ui.Height() == 0 {
		return 0
	}
	return max(m.ui.Height()-chromeLines, components.CardHeight)
}
