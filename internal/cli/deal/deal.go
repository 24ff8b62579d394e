// Package deal holds the cli commands for listing, moving and showing deals
// e.g., dealboard deal ...
package deal

import (
	"github.com/spf13/cobra"
)

// DealCmd returns the deal parent command
func DealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "List, move and show deals",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}
