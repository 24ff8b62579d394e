package deal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealboard/internal/catalog"
	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/tui/components"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ShowCmd returns the deal show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a deal with its notes",
		Long: `Show a deal's details. Notes are rendered as markdown.

Examples:
  dealboard deal show --id 1
  dealboard deal show --id 1 --json`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}

	cmd.Flags().Int("id", 0, "Deal ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dealID, _ := cmd.Flags().GetInt("id")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	formatter := &cli.OutputFormatter{JSON: jsonOutput}

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

	id := types.DealID(dealID)
	stages := cliInstance.App.Board.Stages()
	deal, ok := cliInstance.App.Deals.Get(id)
	if !ok {
		// Not on the active pipeline; look through every deal
		all, err := cliInstance.App.Store.ListDeals(ctx, nil)
		if err != nil {
			return formatter.RemoteError("DEAL_FETCH_ERROR", err)
		}
		for _, d := range all {
			if d.ID == id {
				deal, ok = d, true
				break
			}
		}
		stages = nil
	}
	if !ok {
		if fmtErr := formatter.Error("DEAL_NOT_FOUND", fmt.Sprintf("deal %d not found", dealID)); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return cli.Exitf(cli.ExitNotFound, "deal %d not found", dealID)
	}

	stageName := classify.ResolveName(deal, stages)
	if stageName == "" {
		stageName = deal.LegacyStatus
	}

	if jsonOutput {
		return formatter.Result(cli.Fields{
			"deal":  deal,
			"stage": stageName,
		})
	}

	currency := ""
	pipelineName := "none"
	if deal.PipelineID != nil {
		if p, found := catalog.Find(cliInstance.App.Board.Pipelines(), *deal.PipelineID); found {
			currency = p.Currency
			pipelineName = p.Name
		} else {
			pipelineName = fmt.Sprintf("#%d", *deal.PipelineID)
		}
	}

	fmt.Println(styles.RenderCard(renderDeal(deal, stageName, pipelineName, currency)))
	return nil
}

func renderDeal(deal models.Deal, stageName, pipelineName, currency string) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d %s", deal.ID, deal.Name)))
	b.WriteString("\n")
	if deal.Company != "" {
		b.WriteString(styles.SubtitleStyle.Render(deal.Company))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.LabelStyle.Render(label+":") + " " + styles.ValueStyle.Render(value) + "\n")
	}
	if stageName == "" {
		stageName = "(no stage)"
	}
	field("Pipeline", pipelineName)
	field("Stage", stageName)
	field("Value", cli.FormatValue(deal.Value, currency))
	field("Owner", ownerLabel(deal.OwnerID))
	field("Contact", deal.Contact)
	field("Email", deal.Email)
	field("Phone", deal.Phone)
	if !deal.UpdatedAt.IsZero() {
		field("Updated", deal.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	b.WriteString(styles.SectionStyle.Render("Notes"))
	b.WriteString("\n")
	b.WriteString(components.RenderNotes(components.NotesProps{
		Notes: deal.Notes,
		Width: styles.CardWidth - 10,
	}))

	return b.String()
}
