// Package state holds the board's presentation state: cursor, viewport and
// interaction mode.
package state

import "github.com/thenoetrevino/dealboard/internal/types"

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode      Mode = iota // Default navigation mode
	DragMode                    // A card is picked up and follows the column cursor
	SearchMode                  // Typing a free text filter (/)
	OwnerFilterMode             // Typing an owner id filter
	DealViewMode                // Full deal details with notes
	HelpMode                    // Displaying help screen
)

func (m Mode) String() string {
	switch m {
	case DragMode:
		return "DRAG"
	case SearchMode:
		return "SEARCH"
	case OwnerFilterMode:
		return "OWNER"
	case DealViewMode:
		return "DEAL"
	case HelpMode:
		return "HELP"
	default:
		return "NORMAL"
	}
}

// UIState manages the user interface state.
// This includes navigation (column/deal selection), viewport scrolling,
// terminal dimensions, and the current interaction mode.
type UIState struct {
	// selectedColumn is the index of the currently selected column
	selectedColumn int

	// selectedDeal is the index of the selected deal within the selected column
	selectedDeal int

	width  int
	height int

	mode Mode

	// viewportOffset is the index of the leftmost visible column
	viewportOffset int

	// viewportSize is the number of columns that fit on the screen
	viewportSize int

	// scrollOffsets tracks the vertical scroll offset for each column
	scrollOffsets map[types.StageID]int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		mode:          NormalMode,
		viewportSize:  1, // recalculated when width is set
		scrollOffsets: make(map[types.StageID]int),
	}
}

// SelectedColumn returns the index of the selected column
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SelectedDeal returns the index of the selected deal in the selected column
func (s *UIState) SelectedDeal() int {
	return s.selectedDeal
}

// Width returns the terminal width
func (s *UIState) Width() int {
	return s.width
}

// Height returns the terminal height
func (s *UIState) Height() int {
	return s.height
}

// Mode returns the current interaction mode
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode changes the interaction mode
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ViewportOffset returns the index of the leftmost visible column
func (s *UIState) ViewportOffset() int {
	return s.viewportOffset
}

// ViewportSize returns how many columns fit on screen
func (s *UIState) ViewportSize() int {
	return s.viewportSize
}

// SetSize records the terminal size and recomputes how many columns fit.
func (s *UIState) SetSize(width, height, columnWidth int) {
	s.width = width
	s.height = height
	if columnWidth > 0 {
		s.viewportSize = max(width/columnWidth, 1)
	}
	s.ensureColumnVisible()
}

// Clamp keeps the cursor inside a board of columnCount columns where the
// selected column holds dealCount deals. Call after every board change.
func (s *UIState) Clamp(columnCount int, dealCount func(col int) int) {
	if columnCount == 0 {
		s.selectedColumn, s.selectedDeal, s.viewportOffset = 0, 0, 0
		return
	}
	s.selectedColumn = min(max(s.selectedColumn, 0), columnCount-1)
	n := dealCount(s.selectedColumn)
	s.selectedDeal = min(max(s.selectedDeal, 0), max(n-1, 0))
	s.viewportOffset = min(s.viewportOffset, max(columnCount-s.viewportSize, 0))
	s.ensureColumnVisible()
}

// MoveColumn moves the column cursor by delta. The deal cursor resets.
func (s *UIState) MoveColumn(delta, columnCount int) bool {
	next := s.selectedColumn + delta
	if next < 0 || next >= columnCount {
		return false
	}
	s.selectedColumn = next
	s.selectedDeal = 0
	s.ensureColumnVisible()
	return true
}

// MoveDeal moves the deal cursor by delta within a column of dealCount deals
func (s *UIState) MoveDeal(delta, dealCount int) bool {
	next := s.selectedDeal + delta
	if next < 0 || next >= dealCount {
		return false
	}
	s.selectedDeal = next
	return true
}

// ResetCursor puts the cursor on the first deal of the first column
func (s *UIState) ResetCursor() {
	s.selectedColumn = 0
	s.selectedDeal = 0
	s.viewportOffset = 0
	clear(s.scrollOffsets)
}

// ScrollOffset returns the first visible deal index of a column
func (s *UIState) ScrollOffset(stage types.StageID) int {
	return s.scrollOffsets[stage]
}

// EnsureDealVisible scrolls the stage's column so the selected deal is one
// of the visible deals
func (s *UIState) EnsureDealVisible(stage types.StageID, visible int) {
	if visible < 1 {
		visible = 1
	}
	offset := s.scrollOffsets[stage]
	switch {
	case s.selectedDeal < offset:
		offset = s.selectedDeal
	case s.selectedDeal >= offset+visible:
		offset = s.selectedDeal - visible + 1
	}
	s.scrollOffsets[stage] = offset
}

func (s *UIState) ensureColumnVisible() {
	if s.selectedColumn < s.viewportOffset {
		s.viewportOffset = s.selectedColumn
	}
	if s.selectedColumn >= s.viewportOffset+s.viewportSize {
		s.viewportOffset = s.selectedColumn - s.viewportSize + 1
	}
}
