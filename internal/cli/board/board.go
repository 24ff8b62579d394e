// Package board holds the board command: the interactive board on a
// terminal, a plain column dump otherwise
package board

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/tui"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	var filters *cli.FilterFlags

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the deal board",
		Long: `Open the deal board for the active pipeline. On a terminal this is the
interactive board; otherwise, or with --plain, the columns are printed once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, filters)
		},
	}

	filters = cli.AddFilterFlags(cmd)
	cmd.Flags().Bool("plain", false, "Print the columns instead of opening the interactive board")
	cmd.Flags().Int("width", styles.ColumnWidth, "Column width for plain output")

	return cmd
}

func runBoard(cmd *cobra.Command, filters *cli.FilterFlags) error {
	ctx := cmd.Context()

	plain, _ := cmd.Flags().GetBool("plain")
	width, _ := cmd.Flags().GetInt("width")

	formatter := &cli.OutputFormatter{}

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

	if !plain && cli.IsInteractive() {
		// The board resolves and loads on its own so failures show in place
		return tui.Run(ctx, cliInstance.App, filters.Filters())
	}

	if _, err := cli.LoadBoard(ctx, cliInstance, formatter); err != nil {
		return err
	}
	b := cliInstance.App.Board.Board(filters.Filters())
	fmt.Println(Render(b, width))
	return nil
}
