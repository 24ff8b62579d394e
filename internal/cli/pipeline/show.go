package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/filter"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ShowCmd returns the pipeline show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [pipeline-id]",
		Short: "Show a pipeline's stages",
		Long: `Show the stages of a pipeline in column order. Without an id the active
pipeline is shown together with the number of deals in each stage.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

type stageRow struct {
	models.Stage
	Deals *int `json:"deals,omitempty"`
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	var (
		pipeline *models.Pipeline
		rows     []stageRow
	)

	if len(args) == 1 {
		id, err := types.ParsePipelineID(args[0])
		if err != nil {
			if fmtErr := formatter.Error("INVALID_PIPELINE_ID", fmt.Sprintf("invalid pipeline id: %s", args[0])); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return cli.Exitf(cli.ExitUsage, "invalid pipeline id: %s", args[0])
		}

		detail, err := cliInstance.App.Store.GetPipeline(ctx, id)
		if err != nil {
			if re := remote.Classify(err); re.Code == remote.ErrMissing {
				if fmtErr := formatter.ErrorWithSuggestion("PIPELINE_NOT_FOUND",
					fmt.Sprintf("pipeline %d not found", id),
					"Run 'dealboard pipeline list' to see available pipelines"); fmtErr != nil {
					slog.Error("failed to format error message", "error", fmtErr)
				}
				return cli.Exit(cli.ExitNotFound, err)
			}
			return formatter.RemoteError("PIPELINE_FETCH_ERROR", err)
		}
		pipeline = &detail.Pipeline
		for _, s := range detail.Stages {
			rows = append(rows, stageRow{Stage: s})
		}
	} else {
		if _, err := cli.LoadBoard(ctx, cliInstance, formatter); err != nil {
			return err
		}
		b := cliInstance.App.Board.Board(filter.Filters{})
		pipeline = b.Pipeline
		for _, col := range b.Columns {
			n := len(col.Deals)
			rows = append(rows, stageRow{Stage: col.Stage, Deals: &n})
		}
	}

	if jsonOutput {
		return formatter.Result(cli.Fields{
			"pipeline": pipeline,
			"stages":   rows,
		})
	}

	if pipeline == nil {
		fmt.Println(styles.TitleStyle.Render("No pipeline (legacy deals)"))
	} else {
		fmt.Println(styles.TitleStyle.Render(fmt.Sprintf("%s #%d", pipeline.Name, pipeline.ID)) +
			"  " + styles.SubtitleStyle.Render(pipeline.Currency))
	}
	fmt.Println()

	for i, r := range rows {
		line := fmt.Sprintf("%d. %s  %s", i+1, styles.RenderStageChip(r.Stage),
			styles.SubtitleStyle.Render(fmt.Sprintf("%.0f%%", r.Probability)))
		if r.Deals != nil {
			line += fmt.Sprintf("  %d deals", *r.Deals)
		}
		fmt.Println(line)
	}
	return nil
}
