// Package filter narrows a deal set by pipeline scope, free text, contact,
// status and owner. All predicates are ANDed; an empty predicate matches
// everything.
package filter

import (
	"strings"

	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Filters is the filter-change record sent by the presentation layer.
// ActivePipelineID is filled in by the board, not by the user.
type Filters struct {
	SearchText       string
	Contact          string
	Status           string
	Owner            *types.OwnerID
	ActivePipelineID *types.PipelineID
}

// IsEmpty reports whether no user predicate is set
func (f Filters) IsEmpty() bool {
	return strings.TrimSpace(f.SearchText) == "" &&
		strings.TrimSpace(f.Contact) == "" &&
		strings.TrimSpace(f.Status) == "" &&
		f.Owner == nil
}

// Apply returns the deals that pass every predicate, in input order.
// stages is the active stage set, used to resolve a deal's stage name for the
// status predicate.
func Apply(deals []models.Deal, stages []models.Stage, f Filters) []models.Deal {
	search := strings.ToLower(strings.TrimSpace(f.SearchText))
	contact := strings.ToLower(strings.TrimSpace(f.Contact))
	status := strings.TrimSpace(f.Status)

	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if !InScope(d, f.ActivePipelineID) {
			continue
		}
		if search != "" && !matchesSearch(d, search) {
			continue
		}
		if contact != "" && !strings.Contains(strings.ToLower(d.Contact), contact) {
			continue
		}
		if status != "" && !matchesStatus(d, stages, status) {
			continue
		}
		if f.Owner != nil && (d.OwnerID == nil || *d.OwnerID != *f.Owner) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// InScope reports whether a deal belongs to the active pipeline. With no
// active pipeline only pipeline-less deals are in scope.
func InScope(d models.Deal, active *types.PipelineID) bool {
	return types.SamePipeline(d.PipelineID, active)
}

func matchesSearch(d models.Deal, needle string) bool {
	for _, field := range []string{d.Name, d.Email, d.Company} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesStatus(d models.Deal, stages []models.Stage, status string) bool {
	if strings.EqualFold(strings.TrimSpace(d.LegacyStatus), status) {
		return true
	}
	name := classify.ResolveName(d, stages)
	return name != "" && strings.EqualFold(name, status)
}
