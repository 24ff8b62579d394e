package board

import (
	"github.com/thenoetrevino/dealboard/internal/catalog"
	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/filter"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Board is what the presentation layer renders: one ordered deal list per
// stage column.
type Board struct {
	PipelineID *types.PipelineID
	Pipeline   *models.Pipeline
	Columns    []classify.Column
	// Hidden counts deals in scope that passed the filters but match no column
	Hidden int
	// Total counts deals in scope before user filters
	Total int
	// Loaded is false until the registry has been filled for this pipeline
	Loaded bool
	// StaleStages is set when the stage set still belongs to a previous
	// pipeline because the latest stage load failed
	StaleStages bool
}

// Legacy reports whether the board shows pipeline-less deals
func (b Board) Legacy() bool {
	return b.PipelineID == nil
}

// Column returns the column for a stage id
func (b Board) Column(id types.StageID) (classify.Column, bool) {
	for _, col := range b.Columns {
		if col.Stage.ID == id {
			return col, true
		}
	}
	return classify.Column{}, false
}

// Board classifies the registry contents under the given filters. The
// pipeline scope is always taken from the controller, never from f.
func (c *Controller) Board(f filter.Filters) Board {
	active := c.Active()
	f.ActivePipelineID = active

	stages := c.Stages()
	deals := c.deals.Deals()

	inScope := 0
	for _, d := range deals {
		if filter.InScope(d, active) {
			inScope++
		}
	}

	visible := filter.Apply(deals, stages, f)
	cols, unplaced := classify.Columns(visible, stages)

	b := Board{
		PipelineID: active,
		Columns:    cols,
		Hidden:     len(unplaced),
		Total:      inScope,
		Loaded:     c.deals.Loaded(),
	}
	if active != nil {
		if p, ok := catalog.Find(c.Pipelines(), *active); ok {
			b.Pipeline = &p
		}
		b.StaleStages = !types.SamePipeline(c.stages.PipelineID(), active)
	}
	return b
}
