package catalog

import "errors"

// Catalog errors
var (
	// ErrCatalogUnavailable means a pipeline or stage list failed to load.
	// The last good data is kept; callers may retry.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrStaleResponse means a response arrived for a superseded request and
	// was discarded
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrInvalidPipelineID indicates a non-positive pipeline id
	ErrInvalidPipelineID = errors.New("invalid pipeline ID")
)
