package artifact

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	apperrors "meeting-digest/internal/app/errors"
	"meeting-digest/internal/app/metrics"
	"meeting-digest/internal/app/model"
	"meeting-digest/internal/app/repository"
	"meeting-digest/internal/app/utils"
)

const sniffLen = 512

// Options configure a Store
type Options struct {
	Dir      string
	TTL      time.Duration
	MaxBytes int64
}

// Store keeps uploaded and derived files under a single directory. Every
// stored path is <dir>/<uuid><ext>; client names never reach the filesystem.
type Store struct {
	dir      string
	ttl      time.Duration
	maxBytes int64
	dao      repository.ArtifactDAO
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewStore creates the storage directory if needed
func NewStore(dao repository.ArtifactDAO, opts Options, m *metrics.Metrics, logger *zap.Logger) (*Store, error) {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{
		dir:      dir,
		ttl:      opts.TTL,
		maxBytes: opts.MaxBytes,
		dao:      dao,
		metrics:  m,
		logger:   logger.With(zap.String("component", "artifact_store")),
		now:      time.Now,
	}, nil
}

// Dir returns the absolute storage directory
func (s *Store) Dir() string {
	return s.dir
}

// Save writes r to a new artifact. The content must sniff as audio or video
// and stay within the size limit. Nothing is left on disk when Save fails.
func (s *Store) Save(ctx context.Context, kind model.ArtifactKind, originalName string, r io.Reader) (*model.Artifact, error) {
	name, err := SanitizeFilename(originalName)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, classifyReadError(err)
	}
	if len(head) == 0 {
		return nil, apperrors.Wrapf(apperrors.ErrMissingFile, "upload is empty")
	}

	mimeType := http.DetectContentType(head)
	if !IsMediaType(mimeType) {
		return nil, apperrors.Wrapf(apperrors.ErrUnsupportedMedia, "detected %s", mimeType)
	}

	a := s.newArtifact(kind, extensionFor(name, mimeType))
	a.OriginalName = name
	a.MimeType = mimeType

	f, err := os.OpenFile(a.StoredPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrIO, err)
	}

	hw := utils.NewHashingWriter(f)
	_, copyErr := io.Copy(hw, io.LimitReader(br, s.maxBytes+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		s.discard(a.StoredPath)
		return nil, classifyReadError(copyErr)
	case hw.Written() > s.maxBytes:
		s.discard(a.StoredPath)
		return nil, apperrors.Wrapf(apperrors.ErrTooLarge, "limit is %d bytes", s.maxBytes)
	case closeErr != nil:
		s.discard(a.StoredPath)
		return nil, apperrors.Wrap(apperrors.ErrIO, closeErr)
	}

	a.Size = hw.Written()
	a.SHA256 = hw.Sum()
	if err := s.dao.Insert(ctx, a); err != nil {
		s.discard(a.StoredPath)
		return nil, apperrors.Wrap(apperrors.ErrIO, err)
	}

	s.metrics.RecordStored(string(kind))
	s.logger.Debug("Artifact stored",
		zap.String("id", a.ID),
		zap.String("kind", string(kind)),
		zap.String("mime_type", mimeType),
		zap.Int64("size", a.Size))
	return a, nil
}

// Reserve allocates an opaque path for a file produced by the service. The
// artifact is not indexed until Commit.
func (s *Store) Reserve(kind model.ArtifactKind, parentID, ext string) *model.Artifact {
	a := s.newArtifact(kind, ext)
	a.ParentID = parentID
	return a
}

// Commit records a reserved artifact once its file has been written
func (s *Store) Commit(ctx context.Context, a *model.Artifact, mimeType string) error {
	sum, size, err := utils.CalculateFileHash(a.StoredPath)
	if err != nil {
		s.discard(a.StoredPath)
		return apperrors.Wrap(apperrors.ErrIO, err)
	}
	a.SHA256 = sum
	a.Size = size
	a.MimeType = mimeType

	if err := s.dao.Insert(ctx, a); err != nil {
		s.discard(a.StoredPath)
		return apperrors.Wrap(apperrors.ErrIO, err)
	}
	s.metrics.RecordStored(string(a.Kind))
	return nil
}

// Get returns a live artifact. Unknown, malformed, expired and vanished ids
// all report ErrArtifactNotFound.
func (s *Store) Get(ctx context.Context, id string) (*model.Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrArtifactNotFound, "malformed id")
	}

	a, err := s.dao.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrArtifactNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrIO, err)
	}
	if a.Expired(s.now()) {
		return nil, apperrors.Wrapf(apperrors.ErrArtifactNotFound, "expired")
	}
	if _, err := os.Stat(a.StoredPath); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrArtifactNotFound, err)
	}
	return a, nil
}

// Remove deletes the artifact file and its index row
func (s *Store) Remove(ctx context.Context, a *model.Artifact) error {
	var result *multierror.Error

	if !s.contains(a.StoredPath) {
		result = multierror.Append(result, fmt.Errorf("refusing to remove %s outside %s", a.StoredPath, s.dir))
	} else if err := os.Remove(a.StoredPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		result = multierror.Append(result, err)
	}
	if err := s.dao.Delete(ctx, a.ID); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Release removes a request-scoped artifact, logging instead of failing.
// It runs after the response is decided, so it must not use the request
// context.
func (s *Store) Release(a *model.Artifact) {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Remove(ctx, a); err != nil {
		s.logger.Warn("Failed to release artifact", zap.String("id", a.ID), zap.Error(err))
	}
}

// Sweep removes every expired artifact, then any file in the directory that
// has no index row and is older than the TTL. It returns how many files were
// removed.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	expired, err := s.dao.ListExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}

	var result *multierror.Error
	removed := 0
	for i := range expired {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}
		if err := s.Remove(ctx, &expired[i]); err != nil {
			result = multierror.Append(result, fmt.Errorf("artifact %s: %w", expired[i].ID, err))
			continue
		}
		removed++
	}

	if ctx.Err() == nil {
		orphans, err := s.sweepOrphans(ctx)
		removed += orphans
		if err != nil {
			result = multierror.Append(result, err)
		}
	}

	s.metrics.RecordSwept(removed)
	return removed, result.ErrorOrNil()
}

// sweepOrphans deletes files left unindexed by a crash between writing and
// Commit. Names that are not <uuid><ext> are never touched.
func (s *Store) sweepOrphans(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.ttl)
	var result *multierror.Error
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if _, err := uuid.Parse(id); err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		_, err = s.dao.Get(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			result = multierror.Append(result, fmt.Errorf("orphan %s: %w", name, err))
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			result = multierror.Append(result, fmt.Errorf("orphan %s: %w", name, err))
			continue
		}
		s.logger.Info("Removed unindexed file", zap.String("name", name))
		removed++
	}
	return removed, result.ErrorOrNil()
}

func (s *Store) newArtifact(kind model.ArtifactKind, ext string) *model.Artifact {
	id := uuid.NewString()
	now := s.now()
	return &model.Artifact{
		ID:         id,
		Kind:       kind,
		StoredPath: filepath.Join(s.dir, id+ext),
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
}

func (s *Store) contains(path string) bool {
	rel, err := filepath.Rel(s.dir, filepath.Clean(path))
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
}

func (s *Store) discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Failed to remove partial file", zap.String("path", path), zap.Error(err))
	}
}

func classifyReadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.Wrapf(apperrors.ErrTooLarge, "limit is %d bytes", maxErr.Limit)
	}
	return apperrors.Wrap(apperrors.ErrIO, err)
}
