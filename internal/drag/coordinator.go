// Package drag moves deals between stages.
//
// A move is optimistic: the registry is patched as soon as the card is
// dropped, then the store is asked to persist it. Whatever the store answers,
// the registry is reloaded afterwards so it always converges to server truth.
package drag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/notifications"
	"github.com/thenoetrevino/dealboard/internal/registry"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Mover persists a stage change
type Mover interface {
	MoveDeal(ctx context.Context, id types.DealID, move models.StageMove) (*models.Deal, error)
}

// Deals is the part of the registry the coordinator mutates
type Deals interface {
	Get(id types.DealID) (models.Deal, bool)
	Patch(id types.DealID, fn func(*models.Deal)) error
	Insert(d models.Deal) error
	Reload(ctx context.Context) error
}

// Stages gives the active stage set and the pipeline it belongs to
type Stages interface {
	Stages() []models.Stage
	PipelineID() *types.PipelineID
}

// Coordinator runs drag lifecycles. Different deals may be moved
// concurrently; each deal has at most one live lifecycle.
type Coordinator struct {
	store  Mover
	deals  Deals
	stages Stages
	notify notifications.Sink

	mu   sync.Mutex
	live map[types.DealID]*Drag
}

// NewCoordinator creates a coordinator. notify may be nil.
func NewCoordinator(store Mover, deals Deals, stages Stages, notify notifications.Sink) *Coordinator {
	return &Coordinator{
		store:  store,
		deals:  deals,
		stages: stages,
		notify: notify,
		live:   make(map[types.DealID]*Drag),
	}
}

// Drag is one lifecycle, from pick-up to settle or rollback.
type Drag struct {
	ID       string
	DealID   types.DealID
	Snapshot models.Deal

	// Carried is the stage the card was picked up from. For a deal with a
	// stage id it is that id, even when orphaned; for a legacy deal it is the
	// stage its status resolves to.
	Carried *types.StageID

	state  State
	target types.StageID
}

// Commit is a drag that has been dropped and optimistically applied, waiting
// to be persisted.
type Commit struct {
	c    *Coordinator
	drag *Drag
	move models.StageMove
}

// Outcome is the result of persisting a commit
type Outcome struct {
	DragID    string
	DealID    types.DealID
	State     State
	Deal      *models.Deal
	Err       error
	ReloadErr error
}

// Begin picks up a deal. The record is snapshotted so the lifecycle does not
// depend on what the registry holds later.
func (c *Coordinator) Begin(deal models.Deal) (*Drag, error) {
	pipelineID := c.stages.PipelineID()
	if pipelineID == nil {
		return nil, ErrNoPipeline
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.live[deal.ID]; busy {
		return nil, fmt.Errorf("%w: %d", ErrDragInProgress, deal.ID)
	}

	d := &Drag{
		ID:       uuid.NewString(),
		DealID:   deal.ID,
		Snapshot: deal.Clone(),
		Carried:  carriedStage(deal, c.stages.Stages()),
		state:    Dragging,
	}
	c.live[deal.ID] = d

	slog.Debug("drag started", "drag_id", d.ID, "deal_id", deal.ID, "pipeline_id", *pipelineID)
	return d, nil
}

// Drop releases the card on target. Dropping on the carried stage ends the
// lifecycle with ErrNoOpDrop and touches nothing. Otherwise the registry is
// patched at once and the returned Commit must be persisted.
func (c *Coordinator) Drop(d *Drag, target types.StageID) (*Commit, error) {
	stages := c.stages.Stages()
	pipelineID := c.stages.PipelineID()

	c.mu.Lock()
	if d.state != Dragging {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: drop while %s", ErrInvalidTransition, d.state)
	}

	if d.Carried != nil && *d.Carried == target {
		d.state = Idle
		delete(c.live, d.DealID)
		c.mu.Unlock()
		slog.Debug("no-op drop", "drag_id", d.ID, "deal_id", d.DealID, "stage_id", target)
		return nil, ErrNoOpDrop
	}

	stage, _, ok := models.FindStage(stages, target)
	if !ok || pipelineID == nil {
		d.state = Idle
		delete(c.live, d.DealID)
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", ErrUnknownStage, target)
	}

	d.state = Committing
	d.target = target
	c.mu.Unlock()

	c.applyOptimistic(d, stage)

	return &Commit{
		c:    c,
		drag: d,
		move: models.StageMove{StageID: target, PipelineID: types.PipelinePtr(*pipelineID)},
	}, nil
}

// Cancel abandons a drag that has not been dropped
func (c *Coordinator) Cancel(d *Drag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d.state != Dragging {
		return
	}
	d.state = Idle
	delete(c.live, d.DealID)
	slog.Debug("drag cancelled", "drag_id", d.ID, "deal_id", d.DealID)
}

// State returns the lifecycle state of d
func (c *Coordinator) State(d *Drag) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return d.state
}

// InFlight reports whether deal id has a live lifecycle
func (c *Coordinator) InFlight(id types.DealID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.live[id]
	return ok
}

// Move runs a whole lifecycle for callers without a pointer device.
func (c *Coordinator) Move(ctx context.Context, deal models.Deal, target types.StageID) (Outcome, error) {
	d, err := c.Begin(deal)
	if err != nil {
		return Outcome{}, err
	}
	commit, err := c.Drop(d, target)
	if err != nil {
		return Outcome{DragID: d.ID, DealID: deal.ID, State: c.State(d)}, err
	}
	out := commit.Persist(ctx)
	return out, out.Err
}

// Target returns the stage the commit moves to
func (cm *Commit) Target() types.StageID {
	return cm.move.StageID
}

// Drag returns the lifecycle this commit belongs to
func (cm *Commit) Drag() *Drag {
	return cm.drag
}

// Persist sends the move to the store, then reloads the registry on both
// success and failure. A failure is returned wrapped in
// ErrPersistenceRejected and raised as a notification.
func (cm *Commit) Persist(ctx context.Context) Outcome {
	c, d := cm.c, cm.drag
	ctx = remote.WithRequestID(ctx, d.ID)

	out := Outcome{DragID: d.ID, DealID: d.DealID}

	updated, err := c.store.MoveDeal(ctx, d.DealID, cm.move)
	if err != nil {
		out.State = RolledBack
		out.Err = fmt.Errorf("%w: %w", ErrPersistenceRejected, err)
		slog.Warn("deal move rejected",
			"drag_id", d.ID,
			"deal_id", d.DealID,
			"stage_id", cm.move.StageID,
			"error", err)
	} else {
		out.State = Settled
		out.Deal = updated
		slog.Info("deal moved",
			"drag_id", d.ID,
			"deal_id", d.DealID,
			"stage_id", cm.move.StageID)
	}

	// Reload regardless of outcome; this is also what undoes a rejected patch.
	if err := c.deals.Reload(ctx); err != nil && !errors.Is(err, registry.ErrStaleLoad) {
		out.ReloadErr = err
		slog.Error("registry reload after move failed", "drag_id", d.ID, "error", err)
	}

	c.mu.Lock()
	d.state = out.State
	delete(c.live, d.DealID)
	c.mu.Unlock()

	c.raise(out)
	return out
}

func (c *Coordinator) applyOptimistic(d *Drag, stage models.Stage) {
	patch := func(deal *models.Deal) {
		deal.StageID = types.StagePtr(stage.ID)
		deal.StageName = stage.Name
	}

	err := c.deals.Patch(d.DealID, patch)
	if errors.Is(err, registry.ErrDealNotFound) {
		// Not loaded yet: show the snapshot in its new column until reload.
		snap := d.Snapshot.Clone()
		patch(&snap)
		err = c.deals.Insert(snap)
	}
	if err != nil {
		slog.Debug("optimistic patch skipped", "drag_id", d.ID, "deal_id", d.DealID, "error", err)
	}
}

func (c *Coordinator) raise(out Outcome) {
	if c.notify == nil {
		return
	}
	if out.Err != nil {
		re := remote.Classify(out.Err)
		c.notify.Add(notifications.LevelError, fmt.Sprintf("Move of deal %d failed: %s", out.DealID, re.Error()))
	}
	if out.ReloadErr != nil {
		c.notify.Add(notifications.LevelWarning, "Board may be out of date: "+remote.Classify(out.ReloadErr).Message)
	}
}

func carriedStage(deal models.Deal, stages []models.Stage) *types.StageID {
	if deal.StageID != nil {
		return types.StagePtr(*deal.StageID)
	}
	s, ok := classify.Resolve(deal, stages)
	if !ok {
		return nil
	}
	return types.StagePtr(s)
}
