package selection

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Selection is the persisted "last viewed pipeline" cell.
type Selection struct {
	cell Cell
	key  string
}

// New wraps a Cell, storing the selection under models.SelectionKey
func New(cell Cell) *Selection {
	return &Selection{cell: cell, key: models.SelectionKey}
}

// Load returns the remembered pipeline id, or nil when nothing usable is
// stored. A malformed value is treated as "no selection".
func (s *Selection) Load() (*types.PipelineID, error) {
	raw, ok, err := s.cell.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, nil
	}

	id, err := types.ParsePipelineID(raw)
	if err != nil {
		slog.Warn("ignoring malformed pipeline selection", "value", raw, "error", err)
		return nil, nil
	}
	return &id, nil
}

// Save remembers id; nil records "no pipeline"
func (s *Selection) Save(id *types.PipelineID) error {
	value := ""
	if id != nil {
		value = id.String()
	}
	if err := s.cell.Set(s.key, value); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}
