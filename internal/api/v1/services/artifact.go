package services

import (
	"context"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/app/model"
)

// ArtifactServiceImpl implements ArtifactService
type ArtifactServiceImpl struct {
	store ArtifactStore
}

// NewArtifactService creates a new artifact service
func NewArtifactService(store ArtifactStore) ArtifactService {
	return &ArtifactServiceImpl{store: store}
}

// GetAudio returns a live derived audio artifact. Uploads are never served.
func (s *ArtifactServiceImpl) GetAudio(ctx context.Context, id string) (*model.Artifact, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, toAPIError(err, errors.MsgNoAudio, errors.CodeIOError)
	}
	if a.Kind != model.KindDerivedAudio {
		return nil, errors.NewNotFoundError("Audio")
	}
	return a, nil
}
