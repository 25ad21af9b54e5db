package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-digest/internal/app/model"
	"meeting-digest/internal/app/repository"
)

func TestArtifactDB_Interface(t *testing.T) {
	var _ repository.ArtifactDAO = (*ArtifactDB)(nil)
}

func sampleArtifact(now time.Time) *model.Artifact {
	return &model.Artifact{
		ID:           "2b7c1f9e-8f0c-4a43-9d58-2b0e5d1c7a11",
		Kind:         model.KindDerivedAudio,
		OriginalName: "standup.mp4",
		StoredPath:   "/tmp/artifacts/2b7c1f9e-8f0c-4a43-9d58-2b0e5d1c7a11.mp3",
		MimeType:     "audio/mpeg",
		Size:         2048,
		SHA256:       "abc123",
		ParentID:     "0f4e",
		CreatedAt:    now,
		ExpiresAt:    now.Add(time.Hour),
	}
}

func artifactRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "kind", "original_name", "stored_path", "mime_type",
		"size", "sha256", "parent_id", "created_at", "expires_at",
	})
}

func TestArtifactDB_Insert_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.UnixMilli(1_700_000_000_000)
	a := sampleArtifact(now)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO artifacts")).
		WithArgs(a.ID, "derived_audio", a.OriginalName, a.StoredPath, a.MimeType, a.Size, a.SHA256, a.ParentID,
			now.UnixMilli(), now.Add(time.Hour).UnixMilli()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewArtifactDB(db).Insert(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtifactDB_Insert_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO artifacts")).
		WillReturnError(errors.New("disk I/O error"))

	err = NewArtifactDB(db).Insert(context.Background(), sampleArtifact(time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestArtifactDB_Get_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.UnixMilli(1_700_000_000_000)
	want := sampleArtifact(now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM artifacts WHERE id = ?")).
		WithArgs(want.ID).
		WillReturnRows(artifactRows().AddRow(
			want.ID, "derived_audio", want.OriginalName, want.StoredPath, want.MimeType,
			want.Size, want.SHA256, want.ParentID, now.UnixMilli(), now.Add(time.Hour).UnixMilli(),
		))

	got, err := NewArtifactDB(db).Get(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, model.KindDerivedAudio, got.Kind)
	assert.Equal(t, want.StoredPath, got.StoredPath)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtifactDB_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM artifacts WHERE id = ?")).
		WithArgs("missing").
		WillReturnRows(artifactRows())

	_, err = NewArtifactDB(db).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestArtifactDB_ListExpired_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.UnixMilli(1_700_000_000_000)
	past := now.Add(-time.Minute).UnixMilli()

	mock.ExpectQuery(regexp.QuoteMeta("FROM artifacts WHERE expires_at <= ?")).
		WithArgs(now.UnixMilli()).
		WillReturnRows(artifactRows().
			AddRow("a", "video_upload", "a.mp4", "/tmp/a.mp4", "video/mp4", 10, "", "", past, past).
			AddRow("b", "derived_audio", "", "/tmp/b.mp3", "audio/mpeg", 20, "", "a", past, past))

	got, err := NewArtifactDB(db).ListExpired(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.KindVideoUpload, got[0].Kind)
	assert.Equal(t, "a", got[1].ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtifactDB_Delete_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM artifacts WHERE id = ?")).
		WithArgs("a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewArtifactDB(db).Delete(context.Background(), "a"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArtifactDB_RoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nested", "artifacts.db"))
	require.NoError(t, err)
	defer db.Close()
	dao := NewArtifactDB(db)

	ctx := context.Background()
	now := time.Now().Truncate(time.Millisecond)

	live := sampleArtifact(now)
	expired := sampleArtifact(now)
	expired.ID = "expired"
	expired.ExpiresAt = now.Add(-time.Second)

	require.NoError(t, dao.Insert(ctx, live))
	require.NoError(t, dao.Insert(ctx, expired))
	assert.Error(t, dao.Insert(ctx, live), "duplicate id")

	got, err := dao.Get(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, live.SHA256, got.SHA256)

	list, err := dao.ListExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "expired", list[0].ID)

	require.NoError(t, dao.Delete(ctx, "expired"))
	_, err = dao.Get(ctx, "expired")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
