package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/thenoetrevino/dealboard/internal/board"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/models"
)

const ellipsis = "…"

// Render draws the board as side-by-side columns of fixed width
func Render(b board.Board, width int) string {
	if width < 12 {
		width = 12
	}
	inner := width - 2 // horizontal padding

	title := "No pipeline (legacy deals)"
	currency := ""
	if b.Pipeline != nil {
		title = b.Pipeline.Name
		currency = b.Pipeline.Currency
	}
	header := styles.TitleStyle.Render(title)
	if b.Hidden > 0 {
		header += "  " + styles.SubtitleStyle.Render(fmt.Sprintf("(%d deals match no stage)", b.Hidden))
	}

	if len(b.Columns) == 0 {
		return header + "\n\n" + styles.SubtitleStyle.Render("No stages")
	}

	cols := make([]string, len(b.Columns))
	for i, col := range b.Columns {
		lines := []string{
			styles.RenderStageChip(models.Stage{
				Name:  truncate.StringWithTail(col.Stage.Name, uint(max(inner-6, 1)), ellipsis),
				Color: col.Stage.Color,
			}) + fmt.Sprintf(" %d", len(col.Deals)),
			"",
		}
		for _, d := range col.Deals {
			lines = append(lines,
				truncate.StringWithTail(d.Name, uint(inner), ellipsis),
				styles.AmountStyle.Render(truncate.StringWithTail(cli.FormatValue(d.Value, currency), uint(inner), ellipsis)),
				"",
			)
		}
		cols[i] = styles.ColumnStyle.Width(width).Render(strings.Join(lines, "\n"))
	}

	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
