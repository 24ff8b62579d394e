package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
)

// ListCmd returns the pipeline list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all pipelines",
		Long:  "List all pipelines. The selected pipeline is marked with '*'.",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	pipelines, err := cliInstance.App.Pipelines.Load(ctx)
	if err != nil {
		return formatter.RemoteError("PIPELINE_FETCH_ERROR", err)
	}

	selected, err := cliInstance.App.Selection.Load()
	if err != nil {
		slog.Warn("failed to read pipeline selection", "error", err)
	}

	if quietMode {
		ids := make([]int, len(pipelines))
		for i, p := range pipelines {
			ids[i] = p.ID.ToInt()
		}
		return formatter.IDs(ids)
	}

	if jsonOutput {
		return formatter.Result(cli.Fields{
			"pipelines": pipelines,
			"selected":  selected,
		})
	}

	if len(pipelines) == 0 {
		fmt.Println("No pipelines found; the board shows legacy deals")
		return nil
	}

	fmt.Printf("Found %d pipelines:\n\n", len(pipelines))
	for _, p := range pipelines {
		marker := " "
		if selected != nil && *selected == p.ID {
			marker = "*"
		}
		line := fmt.Sprintf("%s %d  %s  %s", marker, p.ID, p.Name, styles.SubtitleStyle.Render(p.Currency))
		if p.IsDefault {
			line += "  " + styles.SubtitleStyle.Render("(default)")
		}
		fmt.Println(line)
	}
	return nil
}
