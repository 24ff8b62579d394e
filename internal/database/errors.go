package database

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("not found")

	// ErrStageNotInPipeline indicates a move to a stage of another pipeline
	ErrStageNotInPipeline = errors.New("stage does not belong to pipeline")

	// ErrInvalidInput indicates a malformed create or move request
	ErrInvalidInput = errors.New("invalid input")
)
