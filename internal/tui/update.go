package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/dealboard/internal/drag"
	"github.com/thenoetrevino/dealboard/internal/notifications"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/tui/components"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Update handles all messages and dispatches keys by mode
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height, components.ColumnWidth)
		m.refresh()
		return m, nil

	case resolvedMsg:
		m.resolving = false
		if msg.res.Activated || msg.err != nil {
			m.ui.ResetCursor()
		}
		m.refresh()
		return m, nil

	case activatedMsg:
		if msg.err != nil {
			slog.Warn("pipeline switch failed", "error", msg.err)
			m.notify(notifications.LevelError, "Could not switch pipeline: "+remote.Classify(msg.err).Message)
		}
		m.ui.ResetCursor()
		m.refresh()
		return m, nil

	case persistedMsg:
		m.refresh()
		return m, nil

	case tickMsg:
		m.app.Notifications.Prune()
		return m, tickCmd()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		switch m.ui.Mode() {
		case state.DragMode:
			return m.updateDrag(msg)
		case state.SearchMode, state.OwnerFilterMode:
			return m.updatePrompt(msg)
		case state.DealViewMode, state.HelpMode:
			if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.CancelDrag) ||
				key.Matches(msg, m.keys.ViewDeal) || key.Matches(msg, m.keys.ShowHelp) {
				m.ui.SetMode(state.NormalMode)
			}
			return m, nil
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.PrevColumn):
		m.ui.MoveColumn(-1, len(m.board.Columns))
	case key.Matches(msg, m.keys.NextColumn):
		m.ui.MoveColumn(1, len(m.board.Columns))
	case key.Matches(msg, m.keys.PrevDeal):
		if col, ok := m.currentColumn(); ok {
			m.ui.MoveDeal(-1, len(col.Deals))
		}
	case key.Matches(msg, m.keys.NextDeal):
		if col, ok := m.currentColumn(); ok {
			m.ui.MoveDeal(1, len(col.Deals))
		}

	case key.Matches(msg, m.keys.PickUp):
		m.pickUp()

	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(state.SearchMode, "/ ", m.filters.SearchText)
	case key.Matches(msg, m.keys.FilterOwner):
		owner := ""
		if m.filters.Owner != nil {
			owner = strconv.Itoa(m.filters.Owner.ToInt())
		}
		return m.openPrompt(state.OwnerFilterMode, "owner id: ", owner)
	case key.Matches(msg, m.keys.ClearFilters):
		m.filters.SearchText = ""
		m.filters.Contact = ""
		m.filters.Status = ""
		m.filters.Owner = nil

	case key.Matches(msg, m.keys.NextPipeline):
		return m, m.cyclePipeline(1)
	case key.Matches(msg, m.keys.PrevPipeline):
		return m, m.cyclePipeline(-1)
	case key.Matches(msg, m.keys.ClearPipeline):
		return m, clearSelectionCmd(m.ctx, m.app.Board)

	case key.Matches(msg, m.keys.ViewDeal):
		if _, ok := m.currentDeal(); ok {
			m.ui.SetMode(state.DealViewMode)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, refreshCmd(m.ctx, m.app.Board)
	case key.Matches(msg, m.keys.ShowHelp):
		m.ui.SetMode(state.HelpMode)
	}

	m.refresh()
	return m, nil
}

// pickUp starts dragging the deal under the cursor
func (m *Model) pickUp() {
	deal, ok := m.currentDeal()
	if !ok {
		return
	}

	d, err := m.app.Drag.Begin(deal)
	switch {
	case errors.Is(err, drag.ErrNoPipeline):
		m.notify(notifications.LevelWarning, "Select a pipeline to move deals")
		return
	case errors.Is(err, drag.ErrDragInProgress):
		m.notify(notifications.LevelInfo, fmt.Sprintf("Deal %d is still being saved", deal.ID))
		return
	case err != nil:
		m.notify(notifications.LevelError, err.Error())
		return
	}

	m.carrying = d
	m.ui.SetMode(state.DragMode)
}

func (m Model) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevColumn):
		m.ui.MoveColumn(-1, len(m.board.Columns))
	case key.Matches(msg, m.keys.NextColumn):
		m.ui.MoveColumn(1, len(m.board.Columns))

	case key.Matches(msg, m.keys.CancelDrag), key.Matches(msg, m.keys.PickUp):
		m.app.Drag.Cancel(m.carrying)
		m.carrying = nil
		m.ui.SetMode(state.NormalMode)

	case key.Matches(msg, m.keys.Drop):
		return m.drop()

	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

// drop lands the carried card on the column under the cursor. The board
// updates at once; the store write runs as a command.
func (m Model) drop() (tea.Model, tea.Cmd) {
	d := m.carrying
	m.carrying = nil
	m.ui.SetMode(state.NormalMode)

	col, ok := m.currentColumn()
	if !ok || d == nil {
		if d != nil {
			m.app.Drag.Cancel(d)
		}
		return m, nil
	}

	commit, err := m.app.Drag.Drop(d, col.Stage.ID)
	switch {
	case errors.Is(err, drag.ErrNoOpDrop):
		return m, nil
	case err != nil:
		m.notify(notifications.LevelError, "Cannot move deal: "+err.Error())
		m.refresh()
		return m, nil
	}

	m.refresh()
	m.selectDeal(d.DealID)
	return m, persistCmd(m.ctx, commit)
}

// selectDeal moves the cursor onto a deal in the current column, if present
func (m *Model) selectDeal(id types.DealID) {
	col, ok := m.currentColumn()
	if !ok {
		return
	}
	for i, d := range col.Deals {
		if d.ID == id {
			m.ui.MoveDeal(i-m.ui.SelectedDeal(), len(col.Deals))
			break
		}
	}
	m.ui.EnsureDealVisible(col.Stage.ID, components.VisibleCards(m.columnHeight()))
}

func (m Model) openPrompt(mode state.Mode, prompt, value string) (tea.Model, tea.Cmd) {
	m.saved = m.filters
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.ui.SetMode(mode)
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filters = m.saved
		return m.closePrompt()

	case tea.KeyEnter:
		if m.ui.Mode() == state.OwnerFilterMode {
			owner, err := parseOwner(m.input.Value())
			if err != nil {
				m.notify(notifications.LevelWarning, err.Error())
				return m, nil
			}
			m.filters.Owner = owner
		}
		return m.closePrompt()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Search narrows the board while typing
	if m.ui.Mode() == state.SearchMode {
		m.filters.SearchText = m.input.Value()
		m.ui.ResetCursor()
		m.refresh()
	}
	return m, cmd
}

func (m Model) closePrompt() (tea.Model, tea.Cmd) {
	m.input.Blur()
	m.ui.SetMode(state.NormalMode)
	m.ui.ResetCursor()
	m.refresh()
	return m, nil
}

// cyclePipeline selects the next or previous pipeline in catalog order
func (m Model) cyclePipeline(step int) tea.Cmd {
	pipelines := m.app.Board.Pipelines()
	if len(pipelines) == 0 {
		m.notify(notifications.LevelInfo, "No pipelines available")
		return nil
	}

	next := 0
	if active := m.board.PipelineID; active != nil {
		for i, p := range pipelines {
			if p.ID == *active {
				next = (i + step + len(pipelines)) % len(pipelines)
				break
			}
		}
	} else if step < 0 {
		next = len(pipelines) - 1
	}
	return selectCmd(m.ctx, m.app.Board, pipelines[next].ID)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.carrying != nil {
		m.app.Drag.Cancel(m.carrying)
		m.carrying = nil
	}
	return m, tea.Quit
}

func (m Model) notify(level notifications.Level, msg string) {
	m.app.Notifications.Add(level, msg)
}

// parseOwner reads an owner id; blank input clears the owner filter
func parseOwner(s string) (*types.OwnerID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("invalid owner id %q", s)
	}
	return types.OwnerPtr(types.OwnerID(n)), nil
}
