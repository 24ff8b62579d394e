package drag

// State is a drag lifecycle state.
//
//	Idle -> Dragging -> Committing -> Settled | RolledBack
//	Dragging -> Idle (cancel or no-op drop)
type State int

const (
	Idle State = iota
	Dragging
	Committing
	Settled
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	case Settled:
		return "settled"
	case RolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Terminal reports whether the lifecycle is over
func (s State) Terminal() bool {
	return s == Settled || s == RolledBack
}
