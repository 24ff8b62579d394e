// Package board decides which pipeline is shown and assembles the classified,
// filtered columns for it.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/dealboard/internal/catalog"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/notifications"
	"github.com/thenoetrevino/dealboard/internal/registry"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/selection"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Source says how Resolve arrived at the active pipeline
type Source int

const (
	// SourceUnchanged means the catalog could not be loaded and nothing moved
	SourceUnchanged Source = iota
	// SourcePersisted is the remembered selection from a previous session
	SourcePersisted
	// SourceCurrent is the in-memory selection, kept as-is
	SourceCurrent
	// SourceDefault is the catalog's default pipeline
	SourceDefault
	// SourceNone means the catalog is empty and legacy deals are shown
	SourceNone
)

func (s Source) String() string {
	switch s {
	case SourcePersisted:
		return "persisted"
	case SourceCurrent:
		return "current"
	case SourceDefault:
		return "default"
	case SourceNone:
		return "none"
	default:
		return "unchanged"
	}
}

// Resolution is the result of Resolve
type Resolution struct {
	PipelineID *types.PipelineID
	Source     Source
	Pipelines  []models.Pipeline
	// Activated is true when stages and deals were (re)loaded
	Activated bool
}

// Controller owns the selection and drives the catalogs and the registry.
type Controller struct {
	pipelines *catalog.PipelineCatalog
	stages    *catalog.StageCatalog
	deals     *registry.Registry
	selection *selection.Selection
	legacy    []models.Stage
	notify    notifications.Sink

	mu      sync.Mutex
	active  *types.PipelineID
	mounted bool
	// cleared marks an explicit "no pipeline" choice made this session
	cleared bool

	// switchMu orders pipeline switches: the active id, the registry scope
	// and the stage ticket always change together
	switchMu sync.Mutex
}

// Config wires a Controller
type Config struct {
	Pipelines *catalog.PipelineCatalog
	Stages    *catalog.StageCatalog
	Deals     *registry.Registry
	Selection *selection.Selection
	// LegacyStages classify pipeline-less deals when no pipeline is active
	LegacyStages []models.Stage
	Notify       notifications.Sink
}

// NewController creates a controller. Nothing is loaded until Resolve.
func NewController(cfg Config) *Controller {
	return &Controller{
		pipelines: cfg.Pipelines,
		stages:    cfg.Stages,
		deals:     cfg.Deals,
		selection: cfg.Selection,
		legacy:    cfg.LegacyStages,
		notify:    cfg.Notify,
	}
}

// Resolve picks the active pipeline from the catalog:
//  1. a persisted selection that still exists wins;
//  2. else the current in-memory selection is kept without reloading;
//  3. else an explicit "no pipeline" choice made this session is kept;
//  4. else the default pipeline is selected and persisted;
//  5. an empty catalog selects no pipeline.
//
// If the catalog cannot be loaded the current selection is left untouched
// and the error wraps catalog.ErrCatalogUnavailable.
func (c *Controller) Resolve(ctx context.Context) (Resolution, error) {
	pipelines, err := c.pipelines.Load(ctx)
	if err != nil {
		c.warn("Could not load pipelines", err)
		return Resolution{PipelineID: c.Active(), Source: SourceUnchanged}, err
	}

	res := Resolution{Pipelines: pipelines}
	current := c.Active()

	c.mu.Lock()
	firstRun := !c.mounted
	c.mounted = true
	cleared := c.cleared
	c.mu.Unlock()

	persisted, err := c.selection.Load()
	if err != nil {
		slog.Warn("could not read persisted selection", "error", err)
		persisted = nil
	}

	var persist func() error
	switch {
	case persisted != nil && c.pipelines.Contains(*persisted):
		res.PipelineID, res.Source = persisted, SourcePersisted
		c.setCleared(false)

	case current != nil && c.pipelines.Contains(*current):
		res.PipelineID, res.Source = current, SourceCurrent

	case cleared && current == nil:
		res.Source = SourceCurrent

	default:
		def, ok := catalog.Default(pipelines)
		if !ok {
			res.Source = SourceNone
			break
		}
		res.PipelineID, res.Source = types.PipelinePtr(def.ID), SourceDefault
		persist = func() error {
			if err := c.selection.Save(types.PipelinePtr(def.ID)); err != nil {
				slog.Warn("could not persist default selection", "pipeline_id", def.ID, "error", err)
			}
			return nil
		}
	}

	slog.Debug("pipeline resolved", "source", res.Source.String(), "pipeline_id", pipelineAttr(res.PipelineID))

	if !firstRun && types.SamePipeline(res.PipelineID, current) {
		return res, nil
	}

	res.Activated = true
	return res, c.activate(ctx, res.PipelineID, persist)
}

// Select makes id the active pipeline by explicit user choice. The choice is
// persisted before anything is loaded.
func (c *Controller) Select(ctx context.Context, id types.PipelineID) error {
	if !c.pipelines.Known() {
		if _, err := c.pipelines.Load(ctx); err != nil {
			return err
		}
	}
	if !c.pipelines.Contains(id) {
		return fmt.Errorf("%w: %d", models.ErrPipelineNotFound, id)
	}

	return c.activate(ctx, types.PipelinePtr(id), func() error {
		if err := c.selection.Save(types.PipelinePtr(id)); err != nil {
			return err
		}
		c.setCleared(false)
		return nil
	})
}

// ClearSelection switches to "no pipeline", where only legacy deals show.
// The choice holds for the rest of the session; the next session falls back
// to the default pipeline.
func (c *Controller) ClearSelection(ctx context.Context) error {
	return c.activate(ctx, nil, func() error {
		if err := c.selection.Save(nil); err != nil {
			return err
		}
		c.setCleared(true)
		return nil
	})
}

func (c *Controller) setCleared(v bool) {
	c.mu.Lock()
	c.cleared = v
	c.mu.Unlock()
}

// Refresh reloads the catalog, re-resolves, and reloads stages and deals
// even if the selection did not change.
func (c *Controller) Refresh(ctx context.Context) (Resolution, error) {
	res, err := c.Resolve(ctx)
	if err != nil || res.Activated {
		return res, err
	}
	res.Activated = true
	return res, c.activate(ctx, res.PipelineID, nil)
}

// Active returns the active pipeline id, nil for none
func (c *Controller) Active() *types.PipelineID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	return types.PipelinePtr(*c.active)
}

// Pipelines returns the last known pipeline list
func (c *Controller) Pipelines() []models.Pipeline {
	return c.pipelines.Pipelines()
}

// Stages returns the stage set columns are built from. With no pipeline
// active this is the legacy stage set.
func (c *Controller) Stages() []models.Stage {
	if c.Active() == nil {
		return c.legacy
	}
	return c.stages.Stages()
}

// Deals exposes the registry read-only
func (c *Controller) Deals() registry.View {
	return c.deals
}

// activate switches to id and loads its stages and deals concurrently.
// persist, when set, records the choice inside the switch so the persisted
// and active selections cannot disagree. Superseded results are dropped
// quietly.
func (c *Controller) activate(ctx context.Context, id *types.PipelineID, persist func() error) error {
	gen, ticket, err := c.switchTo(id, persist)
	if err != nil {
		return err
	}

	if id == nil {
		return c.quiet(c.deals.Replace(c.deals.Fetch(ctx, gen)))
	}

	var (
		g        errgroup.Group
		stageRes catalog.StageResult
		dealRes  registry.LoadResult
	)
	// Both results are applied whatever the other fetch did, so a failure
	// must not cancel its sibling
	g.Go(func() error {
		stageRes = c.stages.Fetch(ctx, ticket)
		return stageRes.Err
	})
	g.Go(func() error {
		dealRes = c.deals.Fetch(ctx, gen)
		return dealRes.Err
	})
	if err := g.Wait(); err != nil {
		slog.Debug("pipeline load incomplete", "pipeline_id", int(*id), "error", err)
	}

	err = errors.Join(
		c.quiet(c.stages.Apply(stageRes)),
		c.quiet(c.deals.Replace(dealRes)),
	)
	if err != nil {
		c.warn("Board may be out of date", err)
	}
	return err
}

// switchTo makes id active and issues the registry generation and stage
// ticket for it as one step. A concurrent switch lands entirely before or
// after this one, so the last switch owns all three.
func (c *Controller) switchTo(id *types.PipelineID, persist func() error) (uint64, catalog.Ticket, error) {
	c.switchMu.Lock()
	defer c.switchMu.Unlock()

	if persist != nil {
		if err := persist(); err != nil {
			return 0, catalog.Ticket{}, err
		}
	}

	c.mu.Lock()
	c.active = clonePipeline(id)
	c.mu.Unlock()

	gen := c.deals.SetScope(id)
	if id == nil {
		c.stages.Clear()
		return gen, catalog.Ticket{}, nil
	}
	return gen, c.stages.Begin(*id), nil
}

// quiet drops stale-response errors, which are expected when the user
// switches pipelines faster than loads complete
func (c *Controller) quiet(err error) error {
	if errors.Is(err, catalog.ErrStaleResponse) || errors.Is(err, registry.ErrStaleLoad) {
		return nil
	}
	return err
}

func (c *Controller) warn(prefix string, err error) {
	slog.Warn(prefix, "error", err)
	if c.notify == nil {
		return
	}
	c.notify.Add(notifications.LevelWarning, prefix+": "+remote.Classify(err).Message)
}

// LegacyStages builds the stage set used when no pipeline is active. The ids
// are negative so they can never collide with a stored stage id.
func LegacyStages(names []string) []models.Stage {
	stages := make([]models.Stage, 0, len(names))
	for i, name := range names {
		stages = append(stages, models.Stage{
			ID:    types.StageID(-(i + 1)),
			Name:  name,
			Color: models.DefaultStageColor,
		})
	}
	return stages
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
