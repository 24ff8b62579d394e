// Package theme holds the board colors as plain hex strings, set once by Init
package theme

import "github.com/thenoetrevino/dealboard/internal/config/colors"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	Subtle         string
	Normal         string
	Title          string
	Value          string
	ColumnBorder   string
	CardBorder     string
	SelectedBorder string
	CarriedBorder  string
	DropTarget     string
	InfoFg         string
	InfoBg         string
	WarningFg      string
	WarningBg      string
	ErrorFg        string
	ErrorBg        string
)

func init() {
	Init(*colors.Default())
}

// Init initializes the theme colors from the given color scheme
func Init(scheme colors.ColorScheme) {
	scheme.ApplyDefaults()

	Highlight = scheme.Accent
	Subtle = scheme.Subtle
	Normal = scheme.Normal
	Title = scheme.Title
	Value = scheme.Value
	ColumnBorder = scheme.ColumnBorder
	CardBorder = scheme.CardBorder
	SelectedBorder = scheme.SelectedBorder
	CarriedBorder = scheme.CarriedBorder
	DropTarget = scheme.DropTarget
	InfoFg = scheme.InfoFg
	InfoBg = scheme.InfoBg
	WarningFg = scheme.WarningFg
	WarningBg = scheme.WarningBg
	ErrorFg = scheme.ErrorFg
	ErrorBg = scheme.ErrorBg
}
