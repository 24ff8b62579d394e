// Package classify places deals into stage columns.
//
// Placement rules, in order:
//  1. a stage id present in the stage set places the deal in that stage;
//  2. a stage id absent from the stage set (an orphan) places the deal in the
//     first column, and only there;
//  3. a deal without a stage id is matched by its legacy status against stage
//     names, case-insensitively, first match wins;
//  4. anything else is not shown.
package classify

import (
	"strings"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Column is one rendered stage column with the deals placed in it
type Column struct {
	Stage models.Stage
	Deals []models.Deal
}

// Classify returns the stage a deal belongs to when evaluated against the
// column at index col. The orphan rule is only applied while evaluating the
// first column, so an orphan can never be claimed by two columns.
func Classify(deal models.Deal, stages []models.Stage, col int) (types.StageID, bool) {
	if col < 0 || col >= len(stages) {
		return 0, false
	}

	switch ref := deal.StageRef().(type) {
	case models.StageByID:
		if _, _, ok := models.FindStage(stages, types.StageID(ref)); ok {
			return types.StageID(ref), true
		}
		if col == 0 {
			return stages[0].ID, true
		}
		return 0, false
	case models.StageByLegacyName:
		return matchLegacyName(string(ref), stages)
	}
	return 0, false
}

// InColumn reports whether the deal is placed in the column at index col
func InColumn(deal models.Deal, stages []models.Stage, col int) bool {
	id, ok := Classify(deal, stages, col)
	return ok && id == stages[col].ID
}

// Resolve returns the single stage a deal is displayed under, if any
func Resolve(deal models.Deal, stages []models.Stage) (types.StageID, bool) {
	return Classify(deal, stages, 0)
}

// ResolveName returns the name of the stage a deal is displayed under, or ""
func ResolveName(deal models.Deal, stages []models.Stage) string {
	id, ok := Resolve(deal, stages)
	if !ok {
		return ""
	}
	s, _, _ := models.FindStage(stages, id)
	return s.Name
}

// IsOrphan reports whether the deal's stage id is missing from the stage set
func IsOrphan(deal models.Deal, stages []models.Stage) bool {
	if deal.StageID == nil {
		return false
	}
	_, _, ok := models.FindStage(stages, *deal.StageID)
	return !ok
}

// Columns buckets deals into one column per stage, keeping input order inside
// each column. Deals that match no column are returned separately.
func Columns(deals []models.Deal, stages []models.Stage) ([]Column, []models.Deal) {
	cols := make([]Column, len(stages))
	index := make(map[types.StageID]int, len(stages))
	for i, s := range stages {
		cols[i] = Column{Stage: s, Deals: []models.Deal{}}
		if _, seen := index[s.ID]; !seen {
			index[s.ID] = i
		}
	}

	var unplaced []models.Deal
	for _, d := range deals {
		id, ok := Resolve(d, stages)
		if !ok {
			unplaced = append(unplaced, d)
			continue
		}
		i := index[id]
		cols[i].Deals = append(cols[i].Deals, d)
	}
	return cols, unplaced
}

func matchLegacyName(name string, stages []models.Stage) (types.StageID, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	for _, s := range stages {
		if strings.EqualFold(name, strings.TrimSpace(s.Name)) {
			return s.ID, true
		}
	}
	return 0, false
}
