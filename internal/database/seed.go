package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Seed fills an empty store with demo pipelines and deals. It does nothing
// when any pipeline exists.
func Seed(ctx context.Context, repo *Repository) error {
	existing, err := repo.ListPipelines(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	sales, err := repo.CreatePipeline(ctx, NewPipeline{
		Name:      "Sales",
		Currency:  "USD",
		IsDefault: true,
		Stages: []NewStage{
			{Name: "Lead", Color: "#6B7280", Probability: 10},
			{Name: "Qualified", Color: "#3B82F6", Probability: 30},
			{Name: "Proposal", Color: "#8B5CF6", Probability: 60},
			{Name: "Won", Color: "#10B981", Probability: 100},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to seed sales pipeline: %w", err)
	}

	renewals, err := repo.CreatePipeline(ctx, NewPipeline{
		Name:     "Renewals",
		Currency: "EUR",
		Stages: []NewStage{
			{Name: "Upcoming", Probability: 50},
			{Name: "Negotiating", Probability: 75},
			{Name: "Renewed", Probability: 100},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to seed renewals pipeline: %w", err)
	}

	stage := func(p *models.PipelineDetail, i int) *types.StageID {
		return types.StagePtr(p.Stages[i].ID)
	}
	salesID := types.PipelinePtr(sales.ID)
	renewalsID := types.PipelinePtr(renewals.ID)

	deals := []models.Deal{
		{Name: "Acme rollout", Company: "Acme Corp", Email: "buyer@acme.test", Contact: "Wile Coyote",
			PipelineID: salesID, StageID: stage(sales, 0), Value: 12000, OwnerID: types.OwnerPtr(1),
			Notes: "## Context\nNeeds SSO before signing.\n\n- follow up on pricing\n- loop in IT"},
		{Name: "Globex expansion", Company: "Globex", Email: "hank@globex.test", Contact: "Hank Scorpio",
			PipelineID: salesID, StageID: stage(sales, 2), Value: 48000, OwnerID: types.OwnerPtr(2)},
		{Name: "Initech seats", Company: "Initech", Email: "bill@initech.test", Contact: "Bill Lumbergh",
			PipelineID: salesID, LegacyStatus: "qualified", Value: 3500, OwnerID: types.OwnerPtr(1)},
		// Stage id from a deleted stage; shown in the first column
		{Name: "Umbrella pilot", Company: "Umbrella", Contact: "Albert Wesker",
			PipelineID: salesID, StageID: types.StagePtr(9999), Value: 7000},
		{Name: "Hooli renewal", Company: "Hooli", Email: "gavin@hooli.test", Contact: "Gavin Belson",
			PipelineID: renewalsID, StageID: stage(renewals, 1), Value: 90000, OwnerID: types.OwnerPtr(2)},
		// Deals from before pipelines existed
		{Name: "Stark legacy", Company: "Stark Industries", Contact: "Pepper Potts",
			LegacyStatus: "Won", Value: 150000},
		{Name: "Wayne inquiry", Company: "Wayne Enterprises", Contact: "Lucius Fox",
			LegacyStatus: "new", Value: 20000},
	}
	for _, d := range deals {
		if _, err := repo.CreateDeal(ctx, d); err != nil {
			return fmt.Errorf("failed to seed deal: %w", err)
		}
	}

	slog.Info("seeded demo data", "pipelines", 2, "deals", len(deals))
	return nil
}
