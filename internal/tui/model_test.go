package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/filter"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/testutil"
	clitest "github.com/thenoetrevino/dealboard/internal/testutil/cli"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ============================================================================
// helpers
// ============================================================================

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

// press sends a key and runs any command it returns, feeding the result back
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, cmd := send(t, m, msg)
	if cmd != nil {
		if out := cmd(); out != nil {
			m, _ = send(t, m, out)
		}
	}
	return m
}

// newModel returns a board resolved against the seeded store
func newModel(t *testing.T) (Model, *app.App) {
	t.Helper()
	_, a := clitest.SetupCLITest(t)
	ctx := context.Background()

	m := New(ctx, a, filter.Filters{})
	m, _ = send(t, m, resolveCmd(ctx, a.Board)())
	return m, a
}

func columnIDs(m Model, col int) []types.DealID {
	var ids []types.DealID
	for _, d := range m.Board().Columns[col].Deals {
		ids = append(ids, d.ID)
	}
	return ids
}

func shownIDs(m Model) []types.DealID {
	var ids []types.DealID
	for i := range m.Board().Columns {
		ids = append(ids, columnIDs(m, i)...)
	}
	return ids
}

func messages(a *app.App) []string {
	var out []string
	for _, n := range a.Notifications.All() {
		out = append(out, n.Message)
	}
	return out
}

// ============================================================================
// loading
// ============================================================================

func TestModel_ResolvesDefaultPipeline(t *testing.T) {
	m, _ := newModel(t)

	b := m.Board()
	require.NotNil(t, b.PipelineID)
	assert.Equal(t, testutil.SalesPipeline, *b.PipelineID)
	require.Len(t, b.Columns, 4)
	assert.Equal(t, []types.DealID{testutil.AcmeDeal, testutil.UmbrellaDeal}, columnIDs(m, 0))
	assert.Equal(t, state.NormalMode, m.Mode())
}

func TestModel_View(t *testing.T) {
	m, _ := newModel(t)

	out := m.View()
	assert.Contains(t, out, "Sales (#1)")
	assert.Contains(t, out, "Lead (2)")
	assert.Contains(t, out, "#1 Acme rollout")
	assert.Contains(t, out, "NORMAL")
}

func TestModel_ViewBeforeResolve(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	m := New(context.Background(), a, filter.Filters{})

	assert.Contains(t, m.View(), "Loading pipelines")
}

// ============================================================================
// navigation
// ============================================================================

func TestModel_Navigation(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, runes("j"))
	deal, ok := m.currentDeal()
	require.True(t, ok)
	assert.Equal(t, testutil.UmbrellaDeal, deal.ID)

	m = press(t, m, runes("l"))
	deal, ok = m.currentDeal()
	require.True(t, ok)
	assert.Equal(t, testutil.InitechDeal, deal.ID, "column change resets the deal cursor")

	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))
	assert.Equal(t, 3, m.ui.SelectedColumn(), "cursor stops at the last stage")
	_, ok = m.currentDeal()
	assert.False(t, ok, "Won is empty")
}

// ============================================================================
// drag and drop
// ============================================================================

func TestModel_DragAndDrop(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, space)
	assert.Equal(t, state.DragMode, m.Mode())
	assert.True(t, a.Drag.InFlight(testutil.AcmeDeal))
	assert.Contains(t, m.View(), "DRAG")

	m = press(t, m, runes("l"))
	m = press(t, m, runes("l"))

	m, cmd := send(t, m, enter)
	require.NotNil(t, cmd, "persistence runs as a command")
	assert.Equal(t, state.NormalMode, m.Mode())
	assert.Contains(t, columnIDs(m, 2), testutil.AcmeDeal, "card moves before the store confirms")
	assert.NotContains(t, columnIDs(m, 0), testutil.AcmeDeal)

	deal, ok := m.currentDeal()
	require.True(t, ok)
	assert.Equal(t, testutil.AcmeDeal, deal.ID, "cursor follows the dropped card")

	m, _ = send(t, m, cmd())
	assert.False(t, a.Drag.InFlight(testutil.AcmeDeal))
	assert.Contains(t, columnIDs(m, 2), testutil.AcmeDeal)

	stored, ok := a.Deals.Get(testutil.AcmeDeal)
	require.True(t, ok)
	require.NotNil(t, stored.StageID)
	assert.Equal(t, testutil.ProposalStage, *stored.StageID)
}

func TestModel_DropOnSameStage(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, space)
	m, cmd := send(t, m, enter)

	assert.Nil(t, cmd, "no store call for a no-op drop")
	assert.Equal(t, state.NormalMode, m.Mode())
	assert.False(t, a.Drag.InFlight(testutil.AcmeDeal))
	assert.Contains(t, columnIDs(m, 0), testutil.AcmeDeal)
}

func TestModel_DropOrphanOnFirstStage(t *testing.T) {
	m, a := newModel(t)

	// Umbrella points at a deleted stage and is shown under Lead; dropping it
	// there assigns the stage for real.
	m = press(t, m, runes("j"))
	m = press(t, m, space)
	m, cmd := send(t, m, enter)
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	stored, ok := a.Deals.Get(testutil.UmbrellaDeal)
	require.True(t, ok)
	require.NotNil(t, stored.StageID)
	assert.Equal(t, testutil.LeadStage, *stored.StageID)
	assert.Contains(t, columnIDs(m, 0), testutil.UmbrellaDeal)
}

func TestModel_CancelDrag(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, space)
	m = press(t, m, runes("l"))
	m = press(t, m, esc)

	assert.Equal(t, state.NormalMode, m.Mode())
	assert.False(t, a.Drag.InFlight(testutil.AcmeDeal))
	assert.Contains(t, columnIDs(m, 0), testutil.AcmeDeal)
}

func TestModel_QuitCancelsDrag(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, space)
	_, cmd := send(t, m, runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, a.Drag.InFlight(testutil.AcmeDeal))
}

// ============================================================================
// filters
// ============================================================================

func TestModel_Search(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, runes("/"))
	assert.Equal(t, state.SearchMode, m.Mode())

	m = press(t, m, runes("glob"))
	assert.Equal(t, []types.DealID{testutil.GlobexDeal}, shownIDs(m), "board narrows while typing")

	m = press(t, m, enter)
	assert.Equal(t, state.NormalMode, m.Mode())
	assert.Equal(t, "glob", m.Filters().SearchText)

	m = press(t, m, runes("c"))
	assert.Len(t, shownIDs(m), 4)
}

func TestModel_SearchCancelRestores(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, runes("/"))
	m = press(t, m, runes("initech"))
	m = press(t, m, esc)

	assert.Equal(t, "", m.Filters().SearchText)
	assert.Len(t, shownIDs(m), 4)
}

func TestModel_OwnerFilter(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, runes("o"))
	assert.Equal(t, state.OwnerFilterMode, m.Mode())
	m = press(t, m, runes("x"))
	m = press(t, m, enter)
	assert.Equal(t, state.OwnerFilterMode, m.Mode(), "invalid owner keeps the prompt open")
	assert.Contains(t, messages(a), `invalid owner id "x"`)

	m = press(t, m, esc)
	m = press(t, m, runes("o"))
	m = press(t, m, runes("2"))
	m = press(t, m, enter)
	assert.Equal(t, []types.DealID{testutil.GlobexDeal}, shownIDs(m))
}

func TestModel_InitialFilters(t *testing.T) {
	_, a := clitest.SetupCLITest(t)
	ctx := context.Background()

	m := New(ctx, a, filter.Filters{Status: "qualified"})
	m, _ = send(t, m, resolveCmd(ctx, a.Board)())

	assert.Equal(t, []types.DealID{testutil.InitechDeal}, shownIDs(m))
}

// ============================================================================
// pipelines
// ============================================================================

func TestModel_CyclePipelines(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, runes("P"))
	require.NotNil(t, m.Board().PipelineID)
	assert.Equal(t, testutil.RenewalsPipeline, *m.Board().PipelineID)
	assert.Equal(t, []types.DealID{testutil.HooliDeal}, shownIDs(m))
	assert.Contains(t, m.View(), "Renewals (#2)")

	m = press(t, m, runes("P"))
	assert.Equal(t, testutil.SalesPipeline, *m.Board().PipelineID, "cycling wraps around")

	m = press(t, m, runes("O"))
	assert.Equal(t, testutil.RenewalsPipeline, *m.Board().PipelineID)
}

func TestModel_ClearPipeline(t *testing.T) {
	m, a := newModel(t)

	m = press(t, m, runes("0"))
	b := m.Board()
	assert.True(t, b.Legacy())
	assert.ElementsMatch(t, []types.DealID{testutil.StarkDeal, testutil.WayneDeal}, shownIDs(m))
	assert.Contains(t, m.View(), "No pipeline (legacy deals)")

	m = press(t, m, space)
	assert.Equal(t, state.NormalMode, m.Mode(), "legacy deals cannot be dragged")
	assert.Contains(t, messages(a), "Select a pipeline to move deals")
}

func TestModel_Refresh(t *testing.T) {
	m, a := newModel(t)

	_, err := a.Store.MoveDeal(context.Background(), testutil.GlobexDeal, models.StageMove{
		StageID:    testutil.WonStage,
		PipelineID: types.PipelinePtr(testutil.SalesPipeline),
	})
	require.NoError(t, err)

	m = press(t, m, runes("r"))
	assert.Equal(t, []types.DealID{testutil.GlobexDeal}, columnIDs(m, 3))
}

// ============================================================================
// overlays
// ============================================================================

func TestModel_DealView(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, runes("v"))
	assert.Equal(t, state.DealViewMode, m.Mode())

	out := m.View()
	assert.Contains(t, out, "Acme rollout")
	assert.Contains(t, out, "Wile Coyote")
	assert.Contains(t, out, "Context")

	m = press(t, m, esc)
	assert.Equal(t, state.NormalMode, m.Mode())
}

func TestModel_Help(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, runes("?"))
	assert.Equal(t, state.HelpMode, m.Mode())
	out := m.View()
	assert.Contains(t, out, "pick up deal")
	assert.Contains(t, out, "space")

	m = press(t, m, runes("?"))
	assert.Equal(t, state.NormalMode, m.Mode())
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newModel(t)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 70, Height: 40})
	assert.Equal(t, 2, m.ui.ViewportSize())

	out := m.View()
	assert.Contains(t, out, "Lead (2)")
	assert.NotContains(t, out, "Proposal (1)", "only two columns fit")
}

func TestParseOwner(t *testing.T) {
	owner, err := parseOwner(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, types.OwnerID(3), *owner)

	owner, err = parseOwner("")
	require.NoError(t, err)
	assert.Nil(t, owner)

	_, err = parseOwner("-1")
	assert.Error(t, err)
}
