package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/thenoetrevino/dealboard/internal/config"
)

// KeyMap holds the board's key bindings, built from the configured mappings
type KeyMap struct {
	PrevColumn key.Binding
	NextColumn key.Binding
	PrevDeal   key.Binding
	NextDeal   key.Binding

	PickUp     key.Binding
	Drop       key.Binding
	CancelDrag key.Binding

	Search       key.Binding
	FilterOwner  key.Binding
	ClearFilters key.Binding

	NextPipeline  key.Binding
	PrevPipeline  key.Binding
	ClearPipeline key.Binding

	ViewDeal  key.Binding
	Refresh   key.Binding
	ShowHelp  key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// NewKeyMap builds bindings from the user's key mappings. Arrow keys always
// work alongside the configured navigation keys.
func NewKeyMap(km config.KeyMappings) KeyMap {
	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(display(keys[0]), help))
	}

	return KeyMap{
		PrevColumn: bind("previous stage", km.PrevColumn, "left"),
		NextColumn: bind("next stage", km.NextColumn, "right"),
		PrevDeal:   bind("previous deal", km.PrevDeal, "up"),
		NextDeal:   bind("next deal", km.NextDeal, "down"),

		PickUp:     bind("pick up deal", km.PickUp),
		Drop:       bind("drop deal on stage", km.Drop),
		CancelDrag: bind("cancel", km.CancelDrag),

		Search:       bind("search name, email, company", km.Search),
		FilterOwner:  bind("filter by owner", km.FilterOwner),
		ClearFilters: bind("clear filters", km.ClearFilters),

		NextPipeline:  bind("next pipeline", km.NextPipeline),
		PrevPipeline:  bind("previous pipeline", km.PrevPipeline),
		ClearPipeline: bind("no pipeline (legacy deals)", km.ClearPipeline),

		ViewDeal:  bind("view deal", km.ViewDeal),
		Refresh:   bind("refresh", km.Refresh),
		ShowHelp:  bind("toggle help", km.ShowHelp),
		Quit:      bind("quit", km.Quit),
		ForceQuit: bind("quit", "ctrl+c"),
	}
}

// HelpGroups returns the bindings shown on the help screen, by section
func (k KeyMap) HelpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevDeal, k.NextDeal},
		{k.PickUp, k.Drop, k.CancelDrag},
		{k.Search, k.FilterOwner, k.ClearFilters},
		{k.NextPipeline, k.PrevPipeline, k.ClearPipeline},
		{k.ViewDeal, k.Refresh, k.ShowHelp, k.Quit},
	}
}

func display(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
