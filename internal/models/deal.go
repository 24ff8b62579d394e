package models

import (
	"time"

	"github.com/thenoetrevino/dealboard/internal/types"
)

// Deal is a lead tracked on the board.
//
// PipelineID is nil for legacy deals created before pipelines existed. StageID
// drives column placement; LegacyStatus holds the stage name string used by
// deals that predate stage ids.
type Deal struct {
	ID           types.DealID      `json:"id"`
	PipelineID   *types.PipelineID `json:"pipelineId"`
	StageID      *types.StageID    `json:"stageId"`
	LegacyStatus string            `json:"legacyStatus"`
	Value        float64           `json:"value"`
	OwnerID      *types.OwnerID    `json:"ownerId"`
	Name         string            `json:"name"`
	Company      string            `json:"company"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Contact      string            `json:"contact"`
	Notes        string            `json:"notes,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt"`

	// StageName is a display name attached by an optimistic move. The server
	// never sends it.
	StageName string `json:"-"`
}

// Clone returns a deep copy so registry snapshots never alias pointer fields
func (d Deal) Clone() Deal {
	c := d
	if d.PipelineID != nil {
		c.PipelineID = types.PipelinePtr(*d.PipelineID)
	}
	if d.StageID != nil {
		c.StageID = types.StagePtr(*d.StageID)
	}
	if d.OwnerID != nil {
		c.OwnerID = types.OwnerPtr(*d.OwnerID)
	}
	return c
}

// StageRef returns how this deal refers to its stage
func (d Deal) StageRef() StageRef {
	if d.StageID != nil {
		return StageByID(*d.StageID)
	}
	return StageByLegacyName(d.LegacyStatus)
}

// StageMove is the body of a drag re-assignment request
type StageMove struct {
	StageID    types.StageID     `json:"stageId"`
	PipelineID *types.PipelineID `json:"pipelineId"`
}
