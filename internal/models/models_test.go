package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ============================================================================
// StageRef Tests
// ============================================================================

func TestDeal_StageRef(t *testing.T) {
	t.Run("stage id wins over legacy status", func(t *testing.T) {
		d := Deal{StageID: types.StagePtr(4), LegacyStatus: "Won"}
		assert.Equal(t, StageByID(4), d.StageRef())
	})

	t.Run("legacy status when stage id is nil", func(t *testing.T) {
		d := Deal{LegacyStatus: "Qualified"}
		assert.Equal(t, StageByLegacyName("Qualified"), d.StageRef())
	})
}

// ============================================================================
// Struct Tests
// ============================================================================

func TestDeal_CloneDoesNotAlias(t *testing.T) {
	d := Deal{
		ID:         1,
		PipelineID: types.PipelinePtr(2),
		StageID:    types.StagePtr(3),
		OwnerID:    types.OwnerPtr(4),
	}

	c := d.Clone()
	*c.StageID = 9
	*c.PipelineID = 9
	*c.OwnerID = 9

	assert.Equal(t, types.StageID(3), *d.StageID)
	assert.Equal(t, types.PipelineID(2), *d.PipelineID)
	assert.Equal(t, types.OwnerID(4), *d.OwnerID)
}

func TestFindStage(t *testing.T) {
	stages := []Stage{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	s, idx, ok := FindStage(stages, 2)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "B", s.Name)

	_, idx, ok = FindStage(stages, 99)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}
