// Package cmd wires the dealboard cobra commands
package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealboard/internal/cli/board"
	"github.com/thenoetrevino/dealboard/internal/cli/deal"
	"github.com/thenoetrevino/dealboard/internal/cli/pipeline"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/logging"
)

var logCloser io.Closer

// NewRootCmd builds the dealboard command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dealboard",
		Short: "Dealboard - a terminal sales pipeline board",
		Long: `Dealboard shows the deals of a sales pipeline as stage columns and lets
you move them between stages. Run without arguments to open the board.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(pipeline.PipelineCmd())
	rootCmd.AddCommand(deal.DealCmd())
	rootCmd.AddCommand(board.BoardCmd())

	return rootCmd
}

// setup installs logging and styles from the config file
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		// Commands load the config again and report the error themselves
		cfg = config.Default()
	}

	level := cfg.SlogLevel()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}

	closer, err := logging.Init(level)
	if err != nil {
		logging.InitStderr(slog.LevelWarn)
		slog.Warn("file logging unavailable", "error", err)
	} else {
		logCloser = closer
	}

	styles.Init(cfg.ColorScheme)
	return nil
}

// Execute runs the root command. With no arguments the board is opened.
func Execute() error {
	rootCmd := NewRootCmd()
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"board"})
	}
	return rootCmd.Execute()
}
