package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		ColumnBorder:   "#808080",
		CardBorder:     "#4E4E4E",
		SelectedBorder: "#FFFFFF",
		CarriedBorder:  "#FFFFFF",
		DropTarget:     "#BCBCBC",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#D0D0D0",
		Value:  "#FFFFFF",

		InfoFg:    "#FFFFFF",
		InfoBg:    "#303030",
		WarningFg: "#FFFFFF",
		WarningBg: "#4E4E4E",
		ErrorFg:   "#000000",
		ErrorBg:   "#FFFFFF",
	}
}
