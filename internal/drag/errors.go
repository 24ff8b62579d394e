package drag

import "errors"

var (
	// ErrPersistenceRejected wraps a failed move request. The registry has
	// already been reloaded from the store when this is returned.
	ErrPersistenceRejected = errors.New("move rejected by store")

	// ErrNoOpDrop means the card was dropped on the stage it came from
	ErrNoOpDrop = errors.New("dropped on current stage")

	// ErrDragInProgress means the deal already has a live drag
	ErrDragInProgress = errors.New("deal is already being moved")

	// ErrNoPipeline means no pipeline is active, so there is nothing to move to
	ErrNoPipeline = errors.New("no pipeline selected")

	// ErrUnknownStage means the drop target is not in the active stage set
	ErrUnknownStage = errors.New("stage not in active pipeline")

	// ErrInvalidTransition means an operation was attempted in the wrong state
	ErrInvalidTransition = errors.New("invalid drag state transition")
)
