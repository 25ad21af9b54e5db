package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"meeting-digest/internal/app/model"
	"meeting-digest/internal/app/repository"
)

const artifactColumns = `id, kind, original_name, stored_path, mime_type, size, sha256, parent_id, created_at, expires_at`

type ArtifactDB struct {
	db *sql.DB
}

func NewArtifactDB(db *sql.DB) *ArtifactDB {
	return &ArtifactDB{db: db}
}

func (a *ArtifactDB) Insert(ctx context.Context, artifact *model.Artifact) error {
	insertSQL := `INSERT INTO artifacts (` + artifactColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := a.db.ExecContext(ctx, insertSQL,
		artifact.ID,
		string(artifact.Kind),
		artifact.OriginalName,
		artifact.StoredPath,
		artifact.MimeType,
		artifact.Size,
		artifact.SHA256,
		artifact.ParentID,
		artifact.CreatedAt.UnixMilli(),
		artifact.ExpiresAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert artifact %s: %w", artifact.ID, err)
	}
	return nil
}

func (a *ArtifactDB) Get(ctx context.Context, id string) (*model.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE id = ?`
	artifact, err := scanArtifact(a.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artifact %s: %w", id, err)
	}
	return artifact, nil
}

func (a *ArtifactDB) ListExpired(ctx context.Context, now time.Time) ([]model.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE expires_at <= ? ORDER BY expires_at`
	rows, err := a.db.QueryContext(ctx, query, now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	artifacts := make([]model.Artifact, 0)
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		artifacts = append(artifacts, *artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return artifacts, nil
}

func (a *ArtifactDB) Delete(ctx context.Context, id string) error {
	if _, err := a.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete artifact %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (*model.Artifact, error) {
	var (
		artifact  model.Artifact
		kind      string
		createdAt int64
		expiresAt int64
	)
	err := row.Scan(
		&artifact.ID,
		&kind,
		&artifact.OriginalName,
		&artifact.StoredPath,
		&artifact.MimeType,
		&artifact.Size,
		&artifact.SHA256,
		&artifact.ParentID,
		&createdAt,
		&expiresAt,
	)
	if err != nil {
		return nil, err
	}
	artifact.Kind = model.ArtifactKind(kind)
	artifact.CreatedAt = time.UnixMilli(createdAt)
	artifact.ExpiresAt = time.UnixMilli(expiresAt)
	return &artifact, nil
}
