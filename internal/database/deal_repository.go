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

const dealColumns = `id, pipeline_id, stage_id, legacy_status, value, owner_id,
	name, company, email, phone, contact, notes, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (models.Deal, error) {
	var (
		d                          models.Deal
		pipelineID, stageID, owner sql.NullInt64
		updatedAt                  string
	)
	err := row.Scan(&d.ID, &pipelineID, &stageID, &d.LegacyStatus, &d.Value, &owner,
		&d.Name, &d.Company, &d.Email, &d.Phone, &d.Contact, &d.Notes, &updatedAt)
	if err != nil {
		return models.Deal{}, err
	}
	d.PipelineID = nullPipeline(pipelineID)
	d.StageID = nullStage(stageID)
	d.OwnerID = nullOwner(owner)
	d.UpdatedAt = parseTime(updatedAt)
	return d, nil
}

// CreateDeal inserts a deal. ID and UpdatedAt are assigned by the store.
func (r *Repository) CreateDeal(ctx context.Context, d models.Deal) (*models.Deal, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, fmt.Errorf("%w: deal name is required", ErrInvalidInput)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO deals (pipeline_id, stage_id, legacy_status, value, owner_id,
			name, company, email, phone, contact, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		toNull(d.PipelineID), toNull(d.StageID), d.LegacyStatus, d.Value, toNull(d.OwnerID),
		d.Name, d.Company, d.Email, d.Phone, d.Contact, d.Notes,
		r.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert deal '%s': %w", d.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get deal ID after insert: %w", err)
	}
	return r.GetDeal(ctx, types.DealID(id))
}

// ListDeals returns deals of one pipeline, or every deal when pipelineID is nil
func (r *Repository) ListDeals(ctx context.Context, pipelineID *types.PipelineID) ([]models.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals`
	var args []any
	if pipelineID != nil {
		query += ` WHERE pipeline_id = ?`
		args = append(args, *pipelineID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	deals := []models.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// GetDeal returns one deal
func (r *Repository) GetDeal(ctx context.Context, id types.DealID) (*models.Deal, error) {
	d, err := scanDeal(r.db.QueryRowContext(ctx,
		`SELECT `+dealColumns+` FROM deals WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("deal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deal %d: %w", id, err)
	}
	return &d, nil
}

// MoveDeal assigns a deal to a stage. The stage must belong to the given
// pipeline; when no pipeline is given the stage's own pipeline is used. The
// legacy status is rewritten to the stage name and the timestamp refreshed.
func (r *Repository) MoveDeal(ctx context.Context, id types.DealID, move models.StageMove) (*models.Deal, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM deals WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("deal %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to look up deal %d: %w", id, err)
		}

		var (
			stagePipeline types.PipelineID
			stageName     string
		)
		err = tx.QueryRowContext(ctx,
			`SELECT pipeline_id, name FROM stages WHERE id = ?`, move.StageID,
		).Scan(&stagePipeline, &stageName)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("stage %d: %w", move.StageID, ErrStageNotInPipeline)
		}
		if err != nil {
			return fmt.Errorf("failed to look up stage %d: %w", move.StageID, err)
		}
		if move.PipelineID != nil && *move.PipelineID != stagePipeline {
			return fmt.Errorf("stage %d, pipeline %d: %w", move.StageID, *move.PipelineID, ErrStageNotInPipeline)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE deals SET pipeline_id = ?, stage_id = ?, legacy_status = ?, updated_at = ?
			WHERE id = ?`,
			stagePipeline, move.StageID, stageName, r.now().UTC().Format(timeLayout), id,
		)
		if err != nil {
			return fmt.Errorf("failed to move deal %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetDeal(ctx, id)
}
