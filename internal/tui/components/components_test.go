package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/dealboard/internal/classify"
	"github.com/thenoetrevino/dealboard/internal/filter"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

func deal(id int, name string) models.Deal {
	return models.Deal{ID: types.DealID(id), Name: name, Company: "Acme Corp", Value: 1500}
}

func TestRenderCard(t *testing.T) {
	out := RenderCard(CardProps{Deal: deal(1, "Acme Rollout"), Currency: "USD"})

	assert.Contains(t, out, "#1 Acme Rollout")
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "1500 USD")
	assert.Contains(t, out, "unowned")
}

func TestRenderCard_TruncatesLongNames(t *testing.T) {
	out := RenderCard(CardProps{Deal: deal(1, "A very long deal name that cannot fit on a card")})

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "cannot fit on a card")
}

func TestRenderColumn(t *testing.T) {
	col := classify.Column{
		Stage: models.Stage{ID: 1, Name: "Lead", Probability: 10},
		Deals: []models.Deal{deal(1, "Acme"), deal(2, "Globex")},
	}

	out := RenderColumn(ColumnProps{Column: col, Selected: true})
	assert.Contains(t, out, "Lead (2)")
	assert.Contains(t, out, "10%")
	assert.Contains(t, out, "#2 Globex")
}

func TestRenderColumn_Empty(t *testing.T) {
	out := RenderColumn(ColumnProps{Column: classify.Column{Stage: models.Stage{ID: 1, Name: "Won"}}})
	assert.Contains(t, out, "No deals")
}

func TestRenderColumn_Scrolls(t *testing.T) {
	col := classify.Column{Stage: models.Stage{ID: 1, Name: "Lead"}}
	for i := 1; i <= 6; i++ {
		col.Deals = append(col.Deals, deal(i, "Deal"))
	}

	height := columnOverhead + 2*CardHeight
	out := RenderColumn(ColumnProps{Column: col, Height: height, ScrollOffset: 2})

	assert.Contains(t, out, "more above")
	assert.Contains(t, out, "more below")
	assert.Contains(t, out, "#3 Deal")
	assert.NotContains(t, out, "#1 Deal")
	assert.NotContains(t, out, "#5 Deal")
}

func TestVisibleCards(t *testing.T) {
	assert.Equal(t, 1, VisibleCards(3))
	assert.Equal(t, 2, VisibleCards(columnOverhead+2*CardHeight))
}

func TestRenderStatusBar(t *testing.T) {
	out := RenderStatusBar(StatusBarProps{
		Mode:     "NORMAL",
		Pipeline: "Sales",
		Shown:    2,
		Total:    4,
		Hidden:   1,
		Filters:  filter.Filters{SearchText: "acme", Owner: types.OwnerPtr(1)},
		Width:    120,
	})

	assert.Contains(t, out, "Sales")
	assert.Contains(t, out, "2 of 4 deals")
	assert.Contains(t, out, "1 unplaced")
	assert.Contains(t, out, "search:acme owner:1")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500 EUR", FormatAmount(1500, "EUR"))
	assert.Equal(t, "12.5", FormatAmount(12.5, ""))
}
