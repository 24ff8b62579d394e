package remote

import (
	"context"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Store is the request/response contract of the remote deal store.
// Consumers should depend on the narrower interfaces they need.
type Store interface {
	// ListPipelines returns every pipeline visible to the caller
	ListPipelines(ctx context.Context) ([]models.Pipeline, error)

	// GetPipeline returns a pipeline and its stages in column order
	GetPipeline(ctx context.Context, id types.PipelineID) (*models.PipelineDetail, error)

	// ListDeals returns deals of one pipeline, or every deal when pipelineID is nil
	ListDeals(ctx context.Context, pipelineID *types.PipelineID) ([]models.Deal, error)

	// MoveDeal re-assigns a deal's stage and pipeline and returns the stored record
	MoveDeal(ctx context.Context, id types.DealID, move models.StageMove) (*models.Deal, error)
}

// TokenSource supplies the bearer credential attached to every request
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same credential
type StaticToken string

// Token implements TokenSource
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Compile-time verification that *Client implements Store
var _ Store = (*Client)(nil)
