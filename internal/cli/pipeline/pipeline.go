// Package pipeline holds the cli commands for listing and selecting pipelines
// e.g., dealboard pipeline ...
package pipeline

import (
	"github.com/spf13/cobra"
)

// PipelineCmd returns the pipeline parent command
func PipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "List and select pipelines",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UseCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}
