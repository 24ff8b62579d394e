package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thenoetrevino/dealboard/internal/filter"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// FilterFlags are the deal filter flags shared by deal list and board
type FilterFlags struct {
	Search  string
	Contact string
	Status  string
	Owner   int
}

// FlagSet returns a flag set bound to f
func (f *FilterFlags) FlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("filters", pflag.ContinueOnError)
	fs.StringVar(&f.Search, "search", "", "Free text match on name, company or email")
	fs.StringVar(&f.Contact, "contact", "", "Contact name contains")
	fs.StringVar(&f.Status, "status", "", "Stage name equals (case-insensitive)")
	fs.IntVar(&f.Owner, "owner", 0, "Owner id")
	return fs
}

// AddFilterFlags binds a new FilterFlags to cmd
func AddFilterFlags(cmd *cobra.Command) *FilterFlags {
	f := &FilterFlags{}
	cmd.Flags().AddFlagSet(f.FlagSet())
	return f
}

// Filters converts the flags to a filter record. The active pipeline is left
// for the board to fill in.
func (f *FilterFlags) Filters() filter.Filters {
	out := filter.Filters{
		SearchText: f.Search,
		Contact:    f.Contact,
		Status:     f.Status,
	}
	if f.Owner > 0 {
		out.Owner = types.OwnerPtr(types.OwnerID(f.Owner))
	}
	return out
}
