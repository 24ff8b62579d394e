package types

import "strconv"

// ID types give each integer in the domain model a name so a stage id can't be
// passed where a pipeline id is expected.

// PipelineID identifies a pipeline in the remote store
type PipelineID int

// StageID identifies a stage within a pipeline
type StageID int

// DealID identifies a deal
type DealID int

// OwnerID identifies the user owning a deal
type OwnerID int

// ToInt converts type alias back to int for wire and SQL code
func (id PipelineID) ToInt() int {
	return int(id)
}

func (id StageID) ToInt() int {
	return int(id)
}

func (id DealID) ToInt() int {
	return int(id)
}

func (id OwnerID) ToInt() int {
	return int(id)
}

func (id PipelineID) String() string {
	return strconv.Itoa(int(id))
}

func (id StageID) String() string {
	return strconv.Itoa(int(id))
}

func (id DealID) String() string {
	return strconv.Itoa(int(id))
}

// ParsePipelineID parses a decimal pipeline id, rejecting non-positive values
func ParsePipelineID(s string) (PipelineID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return PipelineID(n), nil
}

// PipelinePtr returns a pointer to id, for optional pipeline fields
func PipelinePtr(id PipelineID) *PipelineID {
	return &id
}

// StagePtr returns a pointer to id, for optional stage fields
func StagePtr(id StageID) *StageID {
	return &id
}

// OwnerPtr returns a pointer to id, for optional owner fields
func OwnerPtr(id OwnerID) *OwnerID {
	return &id
}

// SamePipeline reports whether two optional pipeline ids name the same
// pipeline. Two nil values are equal: both mean "no pipeline".
func SamePipeline(a, b *PipelineID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
