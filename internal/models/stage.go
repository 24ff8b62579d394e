package models

import "github.com/thenoetrevino/dealboard/internal/types"

// Stage is one step of a pipeline. There is no ordinal field: a stage's
// position in the fetched stage list is its column position.
type Stage struct {
	ID          types.StageID    `json:"id"`
	PipelineID  types.PipelineID `json:"pipelineId"`
	Name        string           `json:"name"`
	Color       string           `json:"color"` // Hex color code (e.g., "#7D56F4")
	Probability float64          `json:"probability"`
}

// FindStage returns the stage with the given id and its column index
func FindStage(stages []Stage, id types.StageID) (Stage, int, bool) {
	for i, s := range stages {
		if s.ID == id {
			return s, i, true
		}
	}
	return Stage{}, -1, false
}
