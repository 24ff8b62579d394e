package config

// KeyMappings defines all configurable key bindings of the interactive board
type KeyMappings struct {
	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevDeal   string `yaml:"prev_deal"`
	NextDeal   string `yaml:"next_deal"`

	// Dragging
	PickUp     string `yaml:"pick_up"`
	Drop       string `yaml:"drop"`
	CancelDrag string `yaml:"cancel_drag"`

	// Filters
	Search       string `yaml:"search"`
	FilterOwner  string `yaml:"filter_owner"`
	ClearFilters string `yaml:"clear_filters"`

	// Pipelines
	NextPipeline  string `yaml:"next_pipeline"`
	PrevPipeline  string `yaml:"prev_pipeline"`
	ClearPipeline string `yaml:"clear_pipeline"`

	// Other
	ViewDeal string `yaml:"view_deal"`
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevColumn: "h",
		NextColumn: "l",
		PrevDeal:   "k",
		NextDeal:   "j",

		PickUp:     " ",
		Drop:       "enter",
		CancelDrag: "esc",

		Search:       "/",
		FilterOwner:  "o",
		ClearFilters: "c",

		NextPipeline:  "P",
		PrevPipeline:  "O",
		ClearPipeline: "0",

		ViewDeal: "v",
		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&k.PrevColumn, defaults.PrevColumn)
	fill(&k.NextColumn, defaults.NextColumn)
	fill(&k.PrevDeal, defaults.PrevDeal)
	fill(&k.NextDeal, defaults.NextDeal)
	fill(&k.PickUp, defaults.PickUp)
	fill(&k.Drop, defaults.Drop)
	fill(&k.CancelDrag, defaults.CancelDrag)
	fill(&k.Search, defaults.Search)
	fill(&k.FilterOwner, defaults.FilterOwner)
	fill(&k.ClearFilters, defaults.ClearFilters)
	fill(&k.NextPipeline, defaults.NextPipeline)
	fill(&k.PrevPipeline, defaults.PrevPipeline)
	fill(&k.ClearPipeline, defaults.ClearPipeline)
	fill(&k.ViewDeal, defaults.ViewDeal)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
