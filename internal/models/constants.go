package models

// ============================================================================
// STAGE CONSTANTS
// ============================================================================

// DefaultStageColor is used when a stage arrives without a color
const DefaultStageColor = "#6B7280"

// MaxProbability is the upper bound of a stage's close probability
const MaxProbability = 100

// ============================================================================
// SELECTION CONSTANTS
// ============================================================================

// SelectionKey is the well-known key the selected pipeline id is stored under
const SelectionKey = "selected_pipeline"
