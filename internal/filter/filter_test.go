package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
	"pgregory.net/rapid"
)

func fixtureStages() []models.Stage {
	return []models.Stage{
		{ID: 1, PipelineID: 7, Name: "Lead"},
		{ID: 2, PipelineID: 7, Name: "Proposal"},
	}
}

func fixtureDeals() []models.Deal {
	p7 := types.PipelinePtr(7)
	return []models.Deal{
		{ID: 1, PipelineID: p7, StageID: types.StagePtr(1), Name: "Acme renewal", Company: "Acme", Email: "ops@acme.io", Contact: "Jane Roe", OwnerID: types.OwnerPtr(3)},
		{ID: 2, PipelineID: p7, StageID: types.StagePtr(2), Name: "Globex pilot", Company: "Globex", Email: "buy@globex.com", Contact: "Hank Scorpio", OwnerID: types.OwnerPtr(4)},
		{ID: 3, PipelineID: p7, LegacyStatus: "proposal", Name: "Initech seats", Company: "Initech", Email: "bill@initech.com"},
		{ID: 4, PipelineID: types.PipelinePtr(8), StageID: types.StagePtr(1), Name: "Other pipeline"},
		{ID: 5, LegacyStatus: "Lead", Name: "Legacy Acme", Company: "Acme"},
	}
}

func ids(deals []models.Deal) []types.DealID {
	out := make([]types.DealID, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	p7 := types.PipelinePtr(7)

	tests := []struct {
		name    string
		filters Filters
		want    []types.DealID
	}{
		{"pipeline scope only", Filters{ActivePipelineID: p7}, []types.DealID{1, 2, 3}},
		{"no pipeline shows legacy deals", Filters{}, []types.DealID{5}},
		{"search by name", Filters{ActivePipelineID: p7, SearchText: "PILOT"}, []types.DealID{2}},
		{"search by email", Filters{ActivePipelineID: p7, SearchText: "initech.com"}, []types.DealID{3}},
		{"search by company", Filters{ActivePipelineID: p7, SearchText: "acme"}, []types.DealID{1}},
		{"contact", Filters{ActivePipelineID: p7, Contact: "hank"}, []types.DealID{2}},
		{"status via stage name", Filters{ActivePipelineID: p7, Status: "proposal"}, []types.DealID{2, 3}},
		{"status via legacy", Filters{Status: "lead"}, []types.DealID{5}},
		{"owner", Filters{ActivePipelineID: p7, Owner: types.OwnerPtr(3)}, []types.DealID{1}},
		{"conjunction", Filters{ActivePipelineID: p7, Status: "Proposal", SearchText: "globex"}, []types.DealID{2}},
		{"blank values impose nothing", Filters{ActivePipelineID: p7, SearchText: "   "}, []types.DealID{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixtureDeals(), fixtureStages(), tt.filters)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilters_IsEmpty(t *testing.T) {
	assert.True(t, Filters{ActivePipelineID: types.PipelinePtr(1)}.IsEmpty())
	assert.False(t, Filters{Owner: types.OwnerPtr(1)}.IsEmpty())
	assert.False(t, Filters{SearchText: "x"}.IsEmpty())
}

// Re-applying a filter to its own output changes nothing.
func TestProperty_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := Filters{
			SearchText: rapid.SampledFrom([]string{"", "acme", "o", "zzz"}).Draw(t, "search"),
			Status:     rapid.SampledFrom([]string{"", "lead", "Proposal"}).Draw(t, "status"),
		}
		if rapid.Bool().Draw(t, "scoped") {
			f.ActivePipelineID = types.PipelinePtr(7)
		}

		once := Apply(fixtureDeals(), fixtureStages(), f)
		twice := Apply(once, fixtureStages(), f)
		if len(once) != len(twice) {
			t.Fatalf("second pass changed result: %v vs %v", ids(once), ids(twice))
		}
		for i := range once {
			if once[i].ID != twice[i].ID {
				t.Fatalf("order changed at %d", i)
			}
		}
	})
}
