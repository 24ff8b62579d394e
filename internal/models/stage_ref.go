package models

import "github.com/thenoetrevino/dealboard/internal/types"

// StageRef is how a deal points at a stage: by id, or for deals that predate
// stage ids, by the stage's name. The interface is sealed; the only
// implementations are StageByID and StageByLegacyName.
type StageRef interface {
	isStageRef()
}

// StageByID refers to a stage by its id
type StageByID types.StageID

// StageByLegacyName refers to a stage by a free-text stage name
type StageByLegacyName string

func (StageByID) isStageRef()         {}
func (StageByLegacyName) isStageRef() {}
