package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createArtifactsTable = `
CREATE TABLE IF NOT EXISTS artifacts (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	original_name TEXT NOT NULL DEFAULT '',
	stored_path   TEXT NOT NULL,
	mime_type     TEXT NOT NULL DEFAULT '',
	size          INTEGER NOT NULL DEFAULT 0,
	sha256        TEXT NOT NULL DEFAULT '',
	parent_id     TEXT NOT NULL DEFAULT '',
	created_at    INTEGER NOT NULL,
	expires_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_artifacts_expires_at ON artifacts (expires_at);
`

// Open opens (creating if needed) the SQLite database at dbPath and makes
// sure the schema exists.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single writer; concurrent uploads otherwise hit SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the artifact index schema
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createArtifactsTable); err != nil {
		return fmt.Errorf("failed to create artifacts table: %w", err)
	}
	return nil
}
