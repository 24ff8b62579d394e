package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// NewPipeline is the input to CreatePipeline. Stage order is column order.
type NewPipeline struct {
	Name      string
	Currency  string
	IsDefault bool
	Stages    []NewStage
}

// NewStage is one stage of a NewPipeline
type NewStage struct {
	Name        string
	Color       string
	Probability float64
}

// CreatePipeline inserts a pipeline and its stages. Marking it default
// clears the flag on every other pipeline.
func (r *Repository) CreatePipeline(ctx context.Context, in NewPipeline) (*models.PipelineDetail, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: pipeline name is required", ErrInvalidInput)
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if in.IsDefault {
			if _, err := tx.ExecContext(ctx, `UPDATE pipelines SET is_default = 0`); err != nil {
				return fmt.Errorf("failed to clear default pipeline: %w", err)
			}
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO pipelines (name, currency, is_default) VALUES (?, ?, ?)`,
			name, currency, in.IsDefault,
		)
		if err != nil {
			return fmt.Errorf("failed to insert pipeline '%s': %w", name, err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get pipeline ID after insert: %w", err)
		}

		for pos, s := range in.Stages {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO stages (pipeline_id, name, color, probability, position) VALUES (?, ?, ?, ?, ?)`,
				id, s.Name, s.Color, s.Probability, pos,
			)
			if err != nil {
				return fmt.Errorf("failed to create stage '%s' for pipeline %d: %w", s.Name, id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetPipelineDetail(ctx, types.PipelineID(id))
}

// ListPipelines returns all pipelines in creation order
func (r *Repository) ListPipelines(ctx context.Context) ([]models.Pipeline, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, is_default, currency FROM pipelines ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pipelines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	pipelines := []models.Pipeline{}
	for rows.Next() {
		var p models.Pipeline
		if err := rows.Scan(&p.ID, &p.Name, &p.IsDefault, &p.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline: %w", err)
		}
		pipelines = append(pipelines, p)
	}
	return pipelines, rows.Err()
}

// GetPipelineDetail returns a pipeline with its stages in column order
func (r *Repository) GetPipelineDetail(ctx context.Context, id types.PipelineID) (*models.PipelineDetail, error) {
	var detail models.PipelineDetail
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, is_default, currency FROM pipelines WHERE id = ?`, id,
	).Scan(&detail.ID, &detail.Name, &detail.IsDefault, &detail.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pipeline %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pipeline %d: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, pipeline_id, name, color, probability
		FROM stages WHERE pipeline_id = ? ORDER BY position, id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query stages for pipeline %d: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	detail.Stages = []models.Stage{}
	for rows.Next() {
		var s models.Stage
		if err := rows.Scan(&s.ID, &s.PipelineID, &s.Name, &s.Color, &s.Probability); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		detail.Stages = append(detail.Stages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &detail, nil
}
