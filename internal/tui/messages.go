package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/dealboard/internal/board"
	"github.com/thenoetrevino/dealboard/internal/drag"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// tickInterval is how often expired notifications are pruned
const tickInterval = time.Second

// resolvedMsg carries the result of a pipeline resolution
type resolvedMsg struct {
	res board.Resolution
	err error
}

// activatedMsg reports that a pipeline switch finished loading
type activatedMsg struct {
	pipelineID *types.PipelineID
	err        error
}

// persistedMsg carries the settled outcome of a dropped card
type persistedMsg struct {
	outcome drag.Outcome
}

type tickMsg time.Time

func resolveCmd(ctx context.Context, c *board.Controller) tea.Cmd {
	return func() tea.Msg {
		res, err := c.Resolve(ctx)
		return resolvedMsg{res: res, err: err}
	}
}

func refreshCmd(ctx context.Context, c *board.Controller) tea.Cmd {
	return func() tea.Msg {
		res, err := c.Refresh(ctx)
		return resolvedMsg{res: res, err: err}
	}
}

func selectCmd(ctx context.Context, c *board.Controller, id types.PipelineID) tea.Cmd {
	return func() tea.Msg {
		return activatedMsg{pipelineID: types.PipelinePtr(id), err: c.Select(ctx, id)}
	}
}

func clearSelectionCmd(ctx context.Context, c *board.Controller) tea.Cmd {
	return func() tea.Msg {
		return activatedMsg{err: c.ClearSelection(ctx)}
	}
}

// persistCmd writes a dropped card to the store off the UI loop
func persistCmd(ctx context.Context, commit *drag.Commit) tea.Cmd {
	return func() tea.Msg {
		return persistedMsg{outcome: commit.Persist(ctx)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
