package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/selection"
	"github.com/thenoetrevino/dealboard/internal/testutil"
	clitest "github.com/thenoetrevino/dealboard/internal/testutil/cli"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ============================================================================
// pipeline list
// ============================================================================

func TestListPipelines(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	t.Run("human readable", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "Found 2 pipelines")
		assert.Contains(t, output, "Sales")
		assert.Contains(t, output, "Renewals")
		assert.Contains(t, output, "(default)")
	})

	t.Run("quiet mode", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, strings.Fields(output))
	})

	t.Run("json mode", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		assert.Len(t, result["pipelines"], 2)
		assert.Nil(t, result["selected"])
	})
}

func TestListPipelines_MarksSelection(t *testing.T) {
	cell := selection.NewMemoryCell()
	require.NoError(t, cell.Set("selected_pipeline", "2"))
	_, app := clitest.SetupCLITestWithCell(t, cell)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "* 2  Renewals")
}

// ============================================================================
// pipeline use
// ============================================================================

func TestUsePipeline(t *testing.T) {
	t.Run("selects and persists", func(t *testing.T) {
		cell := selection.NewMemoryCell()
		_, app := clitest.SetupCLITestWithCell(t, cell)

		output, err := clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"2"})
		require.NoError(t, err)
		assert.Contains(t, output, "Using pipeline Renewals (#2)")

		value, ok, err := cell.Get("selected_pipeline")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "2", value)
		assert.Equal(t, types.PipelinePtr(testutil.RenewalsPipeline), app.Board.Active())
	})

	t.Run("unknown pipeline", func(t *testing.T) {
		cell := selection.NewMemoryCell()
		_, app := clitest.SetupCLITestWithCell(t, cell)

		_, err := clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"42"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))

		_, ok, err := cell.Get("selected_pipeline")
		require.NoError(t, err)
		assert.False(t, ok, "a rejected choice must not be saved")
	})

	t.Run("invalid id", func(t *testing.T) {
		_, app := clitest.SetupCLITest(t)

		_, err := clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"abc"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	})

	t.Run("no id without a terminal", func(t *testing.T) {
		_, app := clitest.SetupCLITest(t)

		saved := cli.IsInteractive
		cli.IsInteractive = func() bool { return false }
		t.Cleanup(func() { cli.IsInteractive = saved })

		_, err := clitest.ExecuteCLICommand(t, app, UseCmd(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, cli.ErrNotInteractive)
		assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	})

	t.Run("show reports the default", func(t *testing.T) {
		_, app := clitest.SetupCLITest(t)

		output, err := clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"--show"})
		require.NoError(t, err)
		assert.Contains(t, output, "Active pipeline: Sales (#1) (default)")
	})

	t.Run("show reports a saved choice", func(t *testing.T) {
		cell := selection.NewMemoryCell()
		require.NoError(t, cell.Set("selected_pipeline", "2"))
		_, app := clitest.SetupCLITestWithCell(t, cell)

		output, err := clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"--show", "--json"})
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		assert.Equal(t, float64(2), result["pipeline_id"])
		assert.Equal(t, "persisted", result["source"])
	})

	t.Run("clear forgets the choice", func(t *testing.T) {
		cell := selection.NewMemoryCell()
		require.NoError(t, cell.Set("selected_pipeline", "2"))
		_, app := clitest.SetupCLITestWithCell(t, cell)

		output, err := clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"--clear"})
		require.NoError(t, err)
		assert.Contains(t, output, "Cleared pipeline selection")

		value, _, err := cell.Get("selected_pipeline")
		require.NoError(t, err)
		assert.Empty(t, value)
		assert.Nil(t, app.Board.Active())
	})

	t.Run("clear with an id is a usage error", func(t *testing.T) {
		_, app := clitest.SetupCLITest(t)

		_, err := clitest.ExecuteCLICommand(t, app, UseCmd(), []string{"--clear", "2"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	})
}

// ============================================================================
// pipeline show
// ============================================================================

func TestShowPipeline(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	t.Run("active pipeline with counts", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), nil)
		require.NoError(t, err)
		assert.Contains(t, output, "Sales #1")
		// Acme plus the orphaned Umbrella deal
		assert.Contains(t, output, "1. [Lead]  10%  2 deals")
		// Initech by legacy status
		assert.Contains(t, output, "2. [Qualified]  30%  1 deals")
		assert.Contains(t, output, "4. [Won]  100%  0 deals")
	})

	t.Run("explicit pipeline", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"2"})
		require.NoError(t, err)
		assert.Contains(t, output, "Renewals #2")
		assert.Contains(t, output, "1. [Upcoming]")
		assert.NotContains(t, output, "deals")
	})

	t.Run("explicit pipeline json", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"2", "--json"})
		require.NoError(t, err)

		result := testutil.ParseJSON(t, output)
		stages := result["stages"].([]any)
		require.Len(t, stages, 3)
		first := stages[0].(map[string]any)
		assert.Equal(t, "Upcoming", first["name"])
		assert.NotContains(t, first, "deals")
	})

	t.Run("unknown pipeline", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"42"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
	})
}
