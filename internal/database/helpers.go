package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/thenoetrevino/dealboard/internal/types"
)

// timeLayout is how timestamps are stored
const timeLayout = time.RFC3339Nano

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func nullPipeline(nv sql.NullInt64) *types.PipelineID {
	if !nv.Valid {
		return nil
	}
	return types.PipelinePtr(types.PipelineID(nv.Int64))
}

func nullStage(nv sql.NullInt64) *types.StageID {
	if !nv.Valid {
		return nil
	}
	return types.StagePtr(types.StageID(nv.Int64))
}

func nullOwner(nv sql.NullInt64) *types.OwnerID {
	if !nv.Valid {
		return nil
	}
	return types.OwnerPtr(types.OwnerID(nv.Int64))
}

// toNull converts an optional id to a SQL argument
func toNull[T ~int](id *T) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
