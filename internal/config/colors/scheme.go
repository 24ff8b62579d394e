package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave")
	Preset string `yaml:"preset"`

	// Primary accent color (used for the active column and titles)
	Accent string `yaml:"accent"`

	// UI element colors
	ColumnBorder   string `yaml:"column_border"`
	CardBorder     string `yaml:"card_border"`
	SelectedBorder string `yaml:"selected_border"`
	CarriedBorder  string `yaml:"carried_border"` // card being dragged
	DropTarget     string `yaml:"drop_target"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`
	Value  string `yaml:"value"` // deal amounts

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}
	c.MergeFrom(*preset, true)
}

// MergeFrom copies colors from other. With onlyEmpty set, values already
// present in c are kept.
func (c *ColorScheme) MergeFrom(other ColorScheme, onlyEmpty bool) {
	pairs := []struct {
		dst *string
		src string
	}{
		{&c.Accent, other.Accent},
		{&c.ColumnBorder, other.ColumnBorder},
		{&c.CardBorder, other.CardBorder},
		{&c.SelectedBorder, other.SelectedBorder},
		{&c.CarriedBorder, other.CarriedBorder},
		{&c.DropTarget, other.DropTarget},
		{&c.Title, other.Title},
		{&c.Subtle, other.Subtle},
		{&c.Normal, other.Normal},
		{&c.Value, other.Value},
		{&c.InfoFg, other.InfoFg},
		{&c.InfoBg, other.InfoBg},
		{&c.WarningFg, other.WarningFg},
		{&c.WarningBg, other.WarningBg},
		{&c.ErrorFg, other.ErrorFg},
		{&c.ErrorBg, other.ErrorBg},
	}
	for _, p := range pairs {
		if p.src == "" {
			continue
		}
		if onlyEmpty && *p.dst != "" {
			continue
		}
		*p.dst = p.src
	}
}
