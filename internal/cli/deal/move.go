package deal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/drag"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// MoveCmd returns the deal move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <stage>",
		Short: "Move a deal to another stage",
		Long: `Move a deal to another stage of the active pipeline, by stage name or id.
The move is the same one a drag on the board makes: the store is updated and
the deal list reloaded whether it succeeds or not.

Examples:
  # Move to a stage by name (case-insensitive)
  dealboard deal move --id 1 qualified

  # Move to a stage by id
  dealboard deal move --id 1 3

  # JSON output for agents
  dealboard deal move --id 1 won --json
`,
		RunE: runMove,
		Args: cobra.ExactArgs(1),
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Deal ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dealID, _ := cmd.Flags().GetInt("id")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	target := args[0]

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

	res, err := cli.LoadBoard(ctx, cliInstance, formatter)
	if err != nil {
		return err
	}
	if res.PipelineID == nil {
		if fmtErr := formatter.ErrorWithSuggestion("NO_PIPELINE",
			"deals can only be moved within a pipeline",
			"Select one with 'dealboard pipeline use <id>'"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return cli.Exit(cli.ExitValidation, drag.ErrNoPipeline)
	}

	deal, ok := cliInstance.App.Deals.Get(types.DealID(dealID))
	if !ok {
		if fmtErr := formatter.ErrorWithSuggestion("DEAL_NOT_FOUND",
			fmt.Sprintf("deal %d not found", dealID),
			fmt.Sprintf("Only deals of the active pipeline can be moved (%s)",
				cli.FormatPipeline(res.PipelineID, res.Pipelines))); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return cli.Exitf(cli.ExitNotFound, "deal %d not found", dealID)
	}

	stages := cliInstance.App.Board.Stages()
	stage, err := cli.FindStage(stages, target)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("STAGE_NOT_FOUND",
			fmt.Sprintf("stage '%s' not found", target),
			fmt.Sprintf("Available stages: %s", cli.FormatAvailableStages(stages))); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return cli.Exit(cli.ExitNotFound, err)
	}

	fromStage := classify.ResolveName(deal, stages)

	out, err := cliInstance.App.Drag.Move(ctx, deal, stage.ID)
	switch {
	case errors.Is(err, drag.ErrNoOpDrop):
		// Already there: silent success
	case err != nil:
		return formatter.RemoteError("MOVE_REJECTED", err)
	}

	if quietMode {
		return formatter.IDs([]int{dealID})
	}

	if jsonOutput {
		return formatter.Result(cli.Fields{
			"deal_id":    dealID,
			"from_stage": fromStage,
			"to_stage":   stage.Name,
			"moved":      err == nil,
			"drag_id":    out.DragID,
		})
	}

	if err != nil {
		fmt.Printf("Deal %d is already in '%s'\n", dealID, stage.Name)
	} else {
		fmt.Printf("Deal %d moved to '%s'\n", dealID, stage.Name)
	}
	if out.ReloadErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: deal list could not be reloaded: %v\n", out.ReloadErr)
	}
	return nil
}
