package services

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/api/v1/dto"
	"meeting-digest/internal/app/audio"
	"meeting-digest/internal/app/model"
)

// MediaServiceImpl implements MediaService
type MediaServiceImpl struct {
	store     ArtifactStore
	extractor AudioExtractor
	logger    *zap.Logger
}

// NewMediaService creates a new media service
func NewMediaService(store ArtifactStore, extractor AudioExtractor, logger *zap.Logger) MediaService {
	return &MediaServiceImpl{
		store:     store,
		extractor: extractor,
		logger:    logger,
	}
}

// ExtractAudio stores the uploaded video for the duration of the call and
// keeps the derived MP3 until its TTL.
func (s *MediaServiceImpl) ExtractAudio(ctx context.Context, upload dto.Upload) (*dto.ExtractAudioResponse, error) {
	derived, err := s.extract(ctx, upload)
	if err != nil {
		return nil, toAPIError(err, errors.MsgNoVideo, errors.CodeIOError)
	}

	return &dto.ExtractAudioResponse{
		AudioFilename: filepath.Base(derived.StoredPath),
		AudioID:       derived.ID,
		ExpiresAt:     derived.ExpiresAt,
	}, nil
}

func (s *MediaServiceImpl) extract(ctx context.Context, upload dto.Upload) (*model.Artifact, error) {
	video, err := s.store.Save(ctx, model.KindVideoUpload, upload.Filename, upload.Content)
	if err != nil {
		return nil, err
	}
	defer s.store.Release(video)

	derived := s.store.Reserve(model.KindDerivedAudio, video.ID, ".mp3")
	if err := s.extractor.ExtractAudio(ctx, video.StoredPath, derived.StoredPath); err != nil {
		s.logger.Info("Audio extraction failed",
			zap.String("video_id", video.ID),
			zap.String("original_name", video.OriginalName),
			zap.Error(err))
		return nil, err
	}
	if err := s.store.Commit(ctx, derived, audio.MimeType); err != nil {
		return nil, err
	}

	s.logger.Info("Audio extracted",
		zap.String("video_id", video.ID),
		zap.String("audio_id", derived.ID),
		zap.Int64("audio_size", derived.Size))
	return derived, nil
}
