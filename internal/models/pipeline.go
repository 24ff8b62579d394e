package models

import "github.com/thenoetrevino/dealboard/internal/types"

// Pipeline is a named, ordered sequence of stages that deals move through.
// Pipelines are administered outside the board; the board only reads them.
type Pipeline struct {
	ID        types.PipelineID `json:"id"`
	Name      string           `json:"name"`
	IsDefault bool             `json:"isDefault"`
	Currency  string           `json:"currency"`
}

// PipelineDetail is a pipeline together with its stage set, in column order
type PipelineDetail struct {
	Pipeline
	Stages []Stage `json:"stages"`
}
