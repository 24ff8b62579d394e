package database

import (
	"database/sql"
	"time"
)

// Repository implements DataStore over SQLite.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository creates a repository over an initialized database
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}
