package colors

// Kanagawa palette entries used by Wave
var palette = struct {
	sumiInk4, sumiInk6                  string
	fujiWhite, fujiGray                 string
	oniViolet, crystalBlue, springGreen string
	waveAqua2, roninYellow              string
	dragonBlue, winterBlue              string
	winterYellow, samuraiRed, winterRed string
}{
	sumiInk4:     "#2A2A37",
	sumiInk6:     "#54546D",
	fujiWhite:    "#DCD7BA",
	fujiGray:     "#727169",
	oniViolet:    "#957FB8",
	crystalBlue:  "#7E9CD8",
	springGreen:  "#98BB6C",
	waveAqua2:    "#7AA89F",
	roninYellow:  "#FF9E3B",
	dragonBlue:   "#658594",
	winterBlue:   "#252535",
	winterYellow: "#49443C",
	samuraiRed:   "#E82424",
	winterRed:    "#43242B",
}

// Wave returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		Accent: palette.oniViolet,

		ColumnBorder:   palette.sumiInk6,
		CardBorder:     palette.sumiInk4,
		SelectedBorder: palette.waveAqua2,
		CarriedBorder:  palette.roninYellow,
		DropTarget:     palette.springGreen,

		Title:  palette.crystalBlue,
		Subtle: palette.fujiGray,
		Normal: palette.fujiWhite,
		Value:  palette.springGreen,

		InfoFg:    palette.dragonBlue,
		InfoBg:    palette.winterBlue,
		WarningFg: palette.roninYellow,
		WarningBg: palette.winterYellow,
		ErrorFg:   palette.samuraiRed,
		ErrorBg:   palette.winterRed,
	}
}
