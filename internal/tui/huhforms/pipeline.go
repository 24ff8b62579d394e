// Package huhforms builds the huh forms shared by the CLI and the board
package huhforms

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// NoPipeline is the picker value meaning "clear the selection"
const NoPipeline = 0

// PipelineOptions lists one option per pipeline plus a trailing "no pipeline"
// entry for legacy deals
func PipelineOptions(pipelines []models.Pipeline, active *types.PipelineID) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(pipelines)+1)
	for _, p := range pipelines {
		label := p.Name
		if p.IsDefault {
			label += " (default)"
		}
		opt := huh.NewOption(fmt.Sprintf("%s  #%d", label, p.ID), p.ID.ToInt())
		if active != nil && *active == p.ID {
			opt = opt.Selected(true)
		}
		opts = append(opts, opt)
	}
	opts = append(opts, huh.NewOption("No pipeline (legacy deals)", NoPipeline).Selected(active == nil))
	return opts
}

// CreatePipelineForm creates a huh form picking the active pipeline. The
// chosen id is written to selected; NoPipeline means none.
func CreatePipelineForm(pipelines []models.Pipeline, active *types.PipelineID, selected *int) *huh.Form {
	field := huh.NewSelect[int]().
		Key("pipeline").
		Title("Pipeline").
		Description("The board shows deals of the selected pipeline").
		Options(PipelineOptions(pipelines, active)...).
		Value(selected)

	return huh.NewForm(huh.NewGroup(field))
}
