package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/tui/huhforms"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// UseCmd returns the pipeline use subcommand
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use [pipeline-id]",
		Short: "Select the pipeline the board shows",
		Long: `Select the pipeline the board shows. The choice is saved and survives
restarts.

Examples:
  dealboard pipeline use 3        # Select pipeline 3
  dealboard pipeline use          # Pick from a list (terminal only)
  dealboard pipeline use --show   # Show the active pipeline
  dealboard pipeline use --clear  # Forget the saved choice`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUse,
	}

	cmd.Flags().Bool("clear", false, "Clear the saved pipeline selection")
	cmd.Flags().Bool("show", false, "Show the active pipeline and how it was chosen")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runUse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	formatter := &cli.OutputFormatter{JSON: jsonOutput}

	if clearFlag && (showFlag || len(args) > 0) {
		if fmtErr := formatter.Error("USAGE_ERROR", "--clear cannot be combined with --show or a pipeline id"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return cli.Exitf(cli.ExitUsage, "conflicting arguments")
	}

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

	controller := cliInstance.App.Board

	// Handle --show flag
	if showFlag {
		res, err := controller.Resolve(ctx)
		if err != nil && res.Pipelines == nil {
			return formatter.RemoteError("PIPELINE_FETCH_ERROR", err)
		}
		if jsonOutput {
			return formatter.Result(cli.Fields{
				"pipeline_id": res.PipelineID,
				"source":      res.Source.String(),
			})
		}
		fmt.Printf("Active pipeline: %s (%s)\n", cli.FormatPipeline(res.PipelineID, res.Pipelines), res.Source)
		return nil
	}

	// Handle --clear flag
	if clearFlag {
		if err := controller.ClearSelection(ctx); err != nil && !isLoadError(err) {
			if fmtErr := formatter.Error("SELECTION_ERROR", err.Error()); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return cli.Exit(cli.ExitError, err)
		}
		return report(formatter, nil, "Cleared pipeline selection; the default pipeline is used next time")
	}

	var id types.PipelineID
	if len(args) == 1 {
		id, err = types.ParsePipelineID(args[0])
		if err != nil {
			if fmtErr := formatter.Error("INVALID_PIPELINE_ID", fmt.Sprintf("invalid pipeline id: %s", args[0])); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return cli.Exitf(cli.ExitUsage, "invalid pipeline id: %s", args[0])
		}
	} else {
		picked, err := pick(cmd, cliInstance)
		if err != nil {
			return err
		}
		if picked == nil {
			if err := controller.ClearSelection(ctx); err != nil && !isLoadError(err) {
				return cli.Exit(cli.ExitError, err)
			}
			return report(formatter, nil, "Cleared pipeline selection")
		}
		id = *picked
	}

	if _, err := cliInstance.App.Pipelines.Load(ctx); err != nil {
		return formatter.RemoteError("PIPELINE_FETCH_ERROR", err)
	}
	if err := controller.Select(ctx, id); err != nil {
		if errors.Is(err, models.ErrPipelineNotFound) {
			if fmtErr := formatter.ErrorWithSuggestion("PIPELINE_NOT_FOUND",
				fmt.Sprintf("pipeline %d not found", id),
				"Run 'dealboard pipeline list' to see available pipelines"); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return cli.Exit(cli.ExitNotFound, err)
		}
		if !isLoadError(err) {
			return formatter.RemoteError("PIPELINE_SELECT_ERROR", err)
		}
		// The choice is saved; only the stage or deal load failed.
		slog.Warn("pipeline selected but board load failed", "pipeline_id", id, "error", err)
	}

	return report(formatter, types.PipelinePtr(id),
		fmt.Sprintf("Using pipeline %s", cli.FormatPipeline(types.PipelinePtr(id), cliInstance.App.Board.Pipelines())))
}

// pick shows the interactive picker. A nil id means "no pipeline".
func pick(cmd *cobra.Command, cliInstance *cli.CLI) (*types.PipelineID, error) {
	if !cli.IsInteractive() {
		fmt.Fprintln(os.Stderr, "Error: pipeline id required when not attached to a terminal")
		return nil, cli.Exit(cli.ExitUsage, cli.ErrNotInteractive)
	}

	ctx := cmd.Context()
	pipelines, err := cliInstance.App.Pipelines.Load(ctx)
	if err != nil {
		formatter := &cli.OutputFormatter{}
		return nil, formatter.RemoteError("PIPELINE_FETCH_ERROR", err)
	}
	current, err := cliInstance.App.Selection.Load()
	if err != nil {
		slog.Warn("failed to read pipeline selection", "error", err)
	}

	selected := huhforms.NoPipeline
	if current != nil {
		selected = current.ToInt()
	}
	form := huhforms.CreatePipelineForm(pipelines, current, &selected).
		WithTheme(huhforms.CreateBoardTheme(cliInstance.App.Config.ColorScheme))
	if err := form.RunWithContext(ctx); err != nil {
		return nil, cli.Exit(cli.ExitError, err)
	}

	if selected == huhforms.NoPipeline {
		return nil, nil
	}
	return types.PipelinePtr(types.PipelineID(selected)), nil
}

// isLoadError reports whether err came from loading the board after the
// selection itself succeeded
func isLoadError(err error) bool {
	return err != nil && !errors.Is(err, models.ErrPipelineNotFound) && cli.ClassifyRemote(err) != nil
}

func report(formatter *cli.OutputFormatter, id *types.PipelineID, message string) error {
	if formatter.JSON {
		return formatter.Result(cli.Fields{"pipeline_id": id})
	}
	fmt.Println(message)
	return nil
}
