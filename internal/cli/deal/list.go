package deal

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealboard/internal/board"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ListCmd returns the deal list subcommand
func ListCmd() *cobra.Command {
	var filters *cli.FilterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deals of the active pipeline by stage",
		Long: `List the deals of the active pipeline grouped into stage columns.
With no pipeline selected the deals that predate pipelines are listed.

Examples:
  dealboard deal list
  dealboard deal list --search acme
  dealboard deal list --status qualified --owner 2
  dealboard deal list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, filters)
		},
	}

	filters = cli.AddFilterFlags(cmd)

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

type columnOutput struct {
	Stage models.Stage  `json:"stage"`
	Deals []models.Deal `json:"deals"`
}

func runList(cmd *cobra.Command, filters *cli.FilterFlags) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return cli.Exit(cli.ExitError, err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	if _, err := cli.LoadBoard(ctx, cliInstance, formatter); err != nil {
		return err
	}
	b := cliInstance.App.Board.Board(filters.Filters())

	if quietMode {
		var ids []int
		for _, col := range b.Columns {
			for _, d := range col.Deals {
				ids = append(ids, d.ID.ToInt())
			}
		}
		return formatter.IDs(ids)
	}

	if jsonOutput {
		cols := make([]columnOutput, len(b.Columns))
		for i, col := range b.Columns {
			cols[i] = columnOutput{Stage: col.Stage, Deals: col.Deals}
		}
		return formatter.Result(cli.Fields{
			"pipeline_id": b.PipelineID,
			"columns":     cols,
			"hidden":      b.Hidden,
			"total":       b.Total,
		})
	}

	printColumns(b)
	return nil
}

func printColumns(b board.Board) {
	shown := 0
	for _, col := range b.Columns {
		shown += len(col.Deals)
	}

	title := "No pipeline (legacy deals)"
	currency := ""
	if b.Pipeline != nil {
		title = fmt.Sprintf("%s #%d", b.Pipeline.Name, b.Pipeline.ID)
		currency = b.Pipeline.Currency
	}
	fmt.Printf("%s  %s\n", styles.TitleStyle.Render(title),
		styles.SubtitleStyle.Render(fmt.Sprintf("%d of %d deals", shown, b.Total)))
	if b.StaleStages {
		fmt.Println(styles.WarningStyle.Render("stages could not be refreshed; showing the previous set"))
	}

	for _, col := range b.Columns {
		fmt.Printf("\n%s (%d)\n", styles.RenderStageChip(col.Stage), len(col.Deals))
		for _, d := range col.Deals {
			fmt.Printf("  #%-4d %s  %s  %s\n", d.ID, d.Name,
				styles.SubtitleStyle.Render(d.Company),
				styles.AmountStyle.Render(cli.FormatValue(d.Value, currency)))
		}
	}

	if b.Hidden > 0 {
		fmt.Printf("\n%s\n", styles.SubtitleStyle.Render(fmt.Sprintf("%d deals match no stage", b.Hidden)))
	}
}

// ownerLabel renders an optional owner id
func ownerLabel(id *types.OwnerID) string {
	if id == nil {
		return "unassigned"
	}
	return fmt.Sprintf("#%d", *id)
}
