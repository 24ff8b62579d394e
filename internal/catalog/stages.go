package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// StageSource is the remote read used by StageCatalog
type StageSource interface {
	GetPipeline(ctx context.Context, id types.PipelineID) (*models.PipelineDetail, error)
}

// Ticket identifies one stage-load request. Seq grows with every Begin, so a
// result can be checked against the newest request at the time it arrives.
type Ticket struct {
	Seq        uint64
	PipelineID types.PipelineID
}

// StageResult is the outcome of Fetch, applied later with Apply
type StageResult struct {
	Ticket Ticket
	Stages []models.Stage
	Err    error
}

// StageCatalog holds the stage set of the active pipeline.
//
// Loads are split into Begin (record issue order), Fetch (network, no state)
// and Apply (install unless superseded) so the fetch can run off the UI loop.
type StageCatalog struct {
	src StageSource

	mu     sync.Mutex
	issued uint64
	active *types.PipelineID
	stages []models.Stage
	owner  *types.PipelineID
}

// NewStageCatalog creates an empty stage catalog
func NewStageCatalog(src StageSource) *StageCatalog {
	return &StageCatalog{src: src}
}

// Begin records a new load for pipelineID. Every earlier ticket becomes stale.
func (c *StageCatalog) Begin(pipelineID types.PipelineID) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued++
	c.active = types.PipelinePtr(pipelineID)
	return Ticket{Seq: c.issued, PipelineID: pipelineID}
}

// Fetch performs the remote read for a ticket without touching catalog state.
// A not-found pipeline yields an empty stage set.
func (c *StageCatalog) Fetch(ctx context.Context, t Ticket) StageResult {
	if t.PipelineID <= 0 {
		return StageResult{Ticket: t, Err: ErrInvalidPipelineID}
	}

	detail, err := c.src.GetPipeline(ctx, t.PipelineID)
	if errors.Is(err, remote.ErrNotFound) {
		slog.Info("pipeline not found, using empty stage set", "pipeline_id", t.PipelineID)
		return StageResult{Ticket: t, Stages: []models.Stage{}}
	}
	if err != nil {
		return StageResult{Ticket: t, Err: err}
	}
	return StageResult{Ticket: t, Stages: validateStages(t.PipelineID, detail.Stages)}
}

// Apply installs a fetched stage set. Results for a superseded ticket are
// discarded with ErrStaleResponse. A failed fetch keeps the current stage set
// and returns an error wrapping ErrCatalogUnavailable.
func (c *StageCatalog) Apply(r StageResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.Ticket.Seq != c.issued || c.active == nil || *c.active != r.Ticket.PipelineID {
		slog.Debug("discarding stale stage response",
			"pipeline_id", r.Ticket.PipelineID,
			"ticket", r.Ticket.Seq,
			"newest", c.issued)
		return ErrStaleResponse
	}

	if r.Err != nil {
		slog.Warn("stage load failed, keeping previous stages",
			"pipeline_id", r.Ticket.PipelineID,
			"error", r.Err)
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, r.Err)
	}

	c.stages = slices.Clone(r.Stages)
	c.owner = types.PipelinePtr(r.Ticket.PipelineID)
	return nil
}

// Load is Begin, Fetch and Apply in sequence
func (c *StageCatalog) Load(ctx context.Context, pipelineID types.PipelineID) ([]models.Stage, error) {
	t := c.Begin(pipelineID)
	if err := c.Apply(c.Fetch(ctx, t)); err != nil {
		return c.Stages(), err
	}
	return c.Stages(), nil
}

// Clear drops the stage set for "no pipeline" and invalidates in-flight loads
func (c *StageCatalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued++
	c.active = nil
	c.stages = nil
	c.owner = nil
}

// Stages returns a copy of the current stage set in column order
func (c *StageCatalog) Stages() []models.Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.stages)
}

// PipelineID returns the pipeline the current stage set was loaded for
func (c *StageCatalog) PipelineID() *types.PipelineID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner == nil {
		return nil
	}
	return types.PipelinePtr(*c.owner)
}

// validateStages normalizes a fetched stage list. Order is kept; duplicate
// ids after the first are dropped.
func validateStages(pipelineID types.PipelineID, in []models.Stage) []models.Stage {
	out := make([]models.Stage, 0, len(in))
	seen := make(map[types.StageID]bool, len(in))

	for _, s := range in {
		if seen[s.ID] {
			slog.Warn("dropping duplicate stage", "pipeline_id", pipelineID, "stage_id", s.ID)
			continue
		}
		seen[s.ID] = true

		if s.PipelineID == 0 {
			s.PipelineID = pipelineID
		}
		if s.Color == "" {
			s.Color = models.DefaultStageColor
		}
		s.Probability = min(max(s.Probability, 0), models.MaxProbability)
		out = append(out, s)
	}
	return out
}
