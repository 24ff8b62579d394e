// Package registry holds the working set of deals for the active pipeline.
//
// The registry changes in exactly two ways from the board's point of view: a
// full replace from the server (Reload/Replace) and a single optimistic patch
// while a move is in flight (Patch). Insert exists for external create flows.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

var (
	// ErrDealNotFound indicates a patch target is not in the registry
	ErrDealNotFound = errors.New("deal not found in registry")

	// ErrDuplicateDeal indicates an insert of an id already present
	ErrDuplicateDeal = errors.New("deal already in registry")

	// ErrStaleLoad means a load finished after the scope changed and was dropped
	ErrStaleLoad = errors.New("deal load superseded by scope change")
)

// DealSource is the remote read used to fill the registry
type DealSource interface {
	ListDeals(ctx context.Context, pipelineID *types.PipelineID) ([]models.Deal, error)
}

// View is the read-only face of the registry given to presentation code
type View interface {
	Deals() []models.Deal
	Get(id types.DealID) (models.Deal, bool)
	Scope() *types.PipelineID
}

// LoadResult is the outcome of Fetch, installed with Replace
type LoadResult struct {
	Generation uint64
	Seq        uint64
	Scope      *types.PipelineID
	Deals      []models.Deal
	Err        error
}

// Registry is the single owned store of deals.
type Registry struct {
	src DealSource

	mu         sync.RWMutex
	scope      *types.PipelineID
	generation uint64
	fetched    uint64
	applied    uint64
	deals      []models.Deal
	loaded     bool
}

// Compile-time verification that *Registry implements View
var _ View = (*Registry)(nil)

// New creates an empty registry scoped to "no pipeline"
func New(src DealSource) *Registry {
	return &Registry{src: src}
}

// SetScope switches the registry to another pipeline (nil for legacy deals).
// Current contents are dropped and in-flight loads become stale.
func (r *Registry) SetScope(pipelineID *types.PipelineID) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.scope = clonePipeline(pipelineID)
	r.deals = nil
	r.loaded = false
	return r.generation
}

// Generation returns the current scope generation, for use with Fetch
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}

// Fetch reads the deals for the scope of the given generation without
// touching registry state. With no pipeline every deal is requested and only
// pipeline-less ones are kept.
func (r *Registry) Fetch(ctx context.Context, generation uint64) LoadResult {
	r.mu.Lock()
	scope := clonePipeline(r.scope)
	r.fetched++
	res := LoadResult{Generation: generation, Seq: r.fetched, Scope: scope}
	r.mu.Unlock()

	deals, err := r.src.ListDeals(ctx, scope)
	if err != nil {
		res.Err = err
		return res
	}

	res.Deals = make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if scope == nil && d.PipelineID != nil {
			continue
		}
		res.Deals = append(res.Deals, d.Clone())
	}
	return res
}

// Replace installs a fetched deal set, replacing everything. Results from an
// older generation, or started before an already applied fetch, are dropped
// with ErrStaleLoad; a failed fetch leaves the current contents in place.
func (r *Registry) Replace(res LoadResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Generation != r.generation {
		slog.Debug("discarding stale deal load", "generation", res.Generation, "current", r.generation)
		return ErrStaleLoad
	}
	if res.Seq != 0 && res.Seq < r.applied {
		slog.Debug("discarding overtaken deal load", "seq", res.Seq, "applied", r.applied)
		return ErrStaleLoad
	}
	if res.Err != nil {
		return fmt.Errorf("failed to load deals: %w", res.Err)
	}

	r.deals = res.Deals
	r.loaded = true
	r.applied = res.Seq
	slog.Debug("registry replaced from server", "count", len(res.Deals), "pipeline_id", pipelineAttr(r.scope))
	return nil
}

// Reload replaces the registry contents with a fresh read of the current scope
func (r *Registry) Reload(ctx context.Context) error {
	return r.Replace(r.Fetch(ctx, r.Generation()))
}

// Patch applies fn to the deal with the given id in place
func (r *Registry) Patch(id types.DealID, fn func(*models.Deal)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.deals {
		if r.deals[i].ID == id {
			fn(&r.deals[i])
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrDealNotFound, id)
}

// Insert adds a deal created elsewhere
func (r *Registry) Insert(d models.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.deals {
		if existing.ID == d.ID {
			return fmt.Errorf("%w: %d", ErrDuplicateDeal, d.ID)
		}
	}
	r.deals = append(r.deals, d.Clone())
	return nil
}

// Deals returns a copy of the registry contents in server order
func (r *Registry) Deals() []models.Deal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Deal, len(r.deals))
	for i, d := range r.deals {
		out[i] = d.Clone()
	}
	return out
}

// Get returns a copy of one deal
func (r *Registry) Get(id types.DealID) (models.Deal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.deals, func(d models.Deal) bool { return d.ID == id })
	if i < 0 {
		return models.Deal{}, false
	}
	return r.deals[i].Clone(), true
}

// Scope returns the pipeline the registry is scoped to, nil for legacy deals
func (r *Registry) Scope() *types.PipelineID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clonePipeline(r.scope)
}

// Loaded reports whether the current scope has been filled from the server
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

func clonePipeline(id *types.PipelineID) *types.PipelineID {
	if id == nil {
		return nil
	}
	return types.PipelinePtr(*id)
}

func pipelineAttr(id *types.PipelineID) any {
	if id == nil {
		return "none"
	}
	return int(*id)
}
