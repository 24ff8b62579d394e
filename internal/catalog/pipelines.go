// Package catalog loads pipelines and their stage sets from the remote store.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// PipelineSource is the remote read used by PipelineCatalog
type PipelineSource interface {
	ListPipelines(ctx context.Context) ([]models.Pipeline, error)
}

// PipelineCatalog holds the last successfully loaded pipeline list.
type PipelineCatalog struct {
	src PipelineSource

	mu        sync.RWMutex
	pipelines []models.Pipeline
	known     bool
}

// NewPipelineCatalog creates an empty catalog; nothing is known until the
// first successful Load
func NewPipelineCatalog(src PipelineSource) *PipelineCatalog {
	return &PipelineCatalog{src: src}
}

// Load fetches the pipeline list. On failure it returns an empty list and an
// error wrapping ErrCatalogUnavailable, and the previously known list stays
// in place.
func (c *PipelineCatalog) Load(ctx context.Context) ([]models.Pipeline, error) {
	pipelines, err := c.src.ListPipelines(ctx)
	if err != nil {
		slog.Warn("pipeline catalog load failed", "error", err)
		return []models.Pipeline{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	c.mu.Lock()
	c.pipelines = slices.Clone(pipelines)
	c.known = true
	c.mu.Unlock()

	slog.Debug("pipeline catalog loaded", "count", len(pipelines))
	return slices.Clone(pipelines), nil
}

// Known reports whether any load has succeeded. False means "no pipelines
// known yet", which is different from a known-empty catalog.
func (c *PipelineCatalog) Known() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.known
}

// Pipelines returns the last good list
func (c *PipelineCatalog) Pipelines() []models.Pipeline {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.pipelines)
}

// Get returns the pipeline with the given id from the last good list
func (c *PipelineCatalog) Get(id types.PipelineID) (models.Pipeline, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Find(c.pipelines, id)
}

// Find returns the pipeline with the given id
func Find(pipelines []models.Pipeline, id types.PipelineID) (models.Pipeline, bool) {
	for _, p := range pipelines {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pipeline{}, false
}

// Default returns the flag-marked default pipeline, else the first one
func Default(pipelines []models.Pipeline) (models.Pipeline, bool) {
	if len(pipelines) == 0 {
		return models.Pipeline{}, false
	}
	for _, p := range pipelines {
		if p.IsDefault {
			return p, true
		}
	}
	return pipelines[0], true
}

// Contains reports whether id is in the last good list
func (c *PipelineCatalog) Contains(id types.PipelineID) bool {
	_, ok := c.Get(id)
	return ok
}
