package repository

import (
	"context"
	"errors"
	"time"

	"meeting-digest/internal/app/model"
)

// ErrNotFound is returned when no artifact row matches
var ErrNotFound = errors.New("artifact row not found")

// ArtifactDAO indexes every file held in temporary storage so expired files
// can be found and removed, including ones orphaned by a crash.
type ArtifactDAO interface {
	Insert(ctx context.Context, artifact *model.Artifact) error

	Get(ctx context.Context, id string) (*model.Artifact, error)

	ListExpired(ctx context.Context, now time.Time) ([]model.Artifact, error)

	Delete(ctx context.Context, id string) error
}
