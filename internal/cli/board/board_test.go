package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/thenoetrevino/dealboard/internal/board"
	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/models"
	clitest "github.com/thenoetrevino/dealboard/internal/testutil/cli"
)

func TestBoardCmd_PlainWhenNotATerminal(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	saved := cli.IsInteractive
	cli.IsInteractive = func() bool { return false }
	t.Cleanup(func() { cli.IsInteractive = saved })

	output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "Sales")
	assert.Contains(t, output, "[Lead] 2")
	assert.Contains(t, output, "[Proposal] 1")
	assert.Contains(t, output, "Globex expansion")
}

func TestBoardCmd_PlainFlagWithFilters(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--plain", "--owner", "2"})
	require.NoError(t, err)
	assert.Contains(t, output, "Globex expansion")
	assert.NotContains(t, output, "Acme rollout")
	assert.Contains(t, output, "[Lead] 0")
}

func TestRender(t *testing.T) {
	t.Run("truncates long names", func(t *testing.T) {
		b := domain.Board{
			Pipeline: &models.Pipeline{ID: 1, Name: "Sales", Currency: "USD"},
			Columns: []classify.Column{{
				Stage: models.Stage{ID: 1, Name: "Lead"},
				Deals: []models.Deal{{ID: 1, Name: strings.Repeat("x", 80), Value: 5}},
			}},
		}
		out := Render(b, 20)
		assert.Contains(t, out, "…")
		assert.NotContains(t, out, strings.Repeat("x", 40))
		assert.Contains(t, out, "5 USD")
	})

	t.Run("legacy board without stages", func(t *testing.T) {
		out := Render(domain.Board{}, 20)
		assert.Contains(t, out, "No pipeline (legacy deals)")
		assert.Contains(t, out, "No stages")
	})

	t.Run("hidden deals are reported", func(t *testing.T) {
		b := domain.Board{
			Columns: []classify.Column{{Stage: models.Stage{ID: -1, Name: "New"}}},
			Hidden:  2,
		}
		assert.Contains(t, Render(b, 20), "2 deals match no stage")
	})
}
