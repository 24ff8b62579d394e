package database

import (
	"context"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// PipelineRepository reads and creates pipelines with their stages
type PipelineRepository interface {
	CreatePipeline(ctx context.Context, in NewPipeline) (*models.PipelineDetail, error)
	ListPipelines(ctx context.Context) ([]models.Pipeline, error)
	GetPipelineDetail(ctx context.Context, id types.PipelineID) (*models.PipelineDetail, error)
}

// DealRepository reads, creates and moves deals
type DealRepository interface {
	CreateDeal(ctx context.Context, d models.Deal) (*models.Deal, error)
	ListDeals(ctx context.Context, pipelineID *types.PipelineID) ([]models.Deal, error)
	GetDeal(ctx context.Context, id types.DealID) (*models.Deal, error)
	MoveDeal(ctx context.Context, id types.DealID, move models.StageMove) (*models.Deal, error)
}

// DataStore is everything the daemon serves
type DataStore interface {
	PipelineRepository
	DealRepository
}

var _ DataStore = (*Repository)(nil)
