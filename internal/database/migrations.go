package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the database schema
func runMigrations(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS pipelines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			is_default INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS stages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pipeline_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '',
			probability REAL NOT NULL DEFAULT 0,
			position INTEGER NOT NULL,
			FOREIGN KEY (pipeline_id) REFERENCES pipelines(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stages_pipeline
		ON stages(pipeline_id, position)`,
		`CREATE TABLE IF NOT EXISTS deals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pipeline_id INTEGER,
			stage_id INTEGER,
			legacy_status TEXT NOT NULL DEFAULT '',
			value REAL NOT NULL DEFAULT 0,
			owner_id INTEGER,
			name TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			contact TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL,
			FOREIGN KEY (pipeline_id) REFERENCES pipelines(id) ON DELETE SET NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deals_pipeline
		ON deals(pipeline_id, id)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
