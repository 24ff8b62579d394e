package models

import "errors"

// Domain-specific errors for stage lookups
var (
	// ErrStageNotFound indicates a stage id is absent from the active stage set
	ErrStageNotFound = errors.New("stage not found in pipeline")

	// ErrPipelineNotFound indicates a pipeline id is absent from the catalog
	ErrPipelineNotFound = errors.New("pipeline not found")
)
