package services

import (
	"context"

	"go.uber.org/zap"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/api/v1/dto"
	"meeting-digest/internal/app/api"
	"meeting-digest/internal/app/model"
)

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	store       ArtifactStore
	transcriber api.Transcriber
	logger      *zap.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(store ArtifactStore, transcriber api.Transcriber, logger *zap.Logger) TranscriptionService {
	return &TranscriptionServiceImpl{
		store:       store,
		transcriber: transcriber,
		logger:      logger,
	}
}

// TranscribeUpload transcribes an uploaded audio file, which is removed
// when the call returns.
func (s *TranscriptionServiceImpl) TranscribeUpload(ctx context.Context, upload dto.Upload) (*dto.TranscriptionResponse, error) {
	audio, err := s.store.Save(ctx, model.KindAudioUpload, upload.Filename, upload.Content)
	if err != nil {
		return nil, toAPIError(err, errors.MsgNoAudio, errors.CodeTranscriptionServiceError)
	}
	defer s.store.Release(audio)

	return s.transcribe(ctx, audio)
}

// TranscribeArtifact transcribes audio produced by an earlier extraction
func (s *TranscriptionServiceImpl) TranscribeArtifact(ctx context.Context, audioID string) (*dto.TranscriptionResponse, error) {
	audio, err := s.store.Get(ctx, audioID)
	if err != nil {
		return nil, toAPIError(err, errors.MsgNoAudio, errors.CodeTranscriptionServiceError)
	}
	if audio.Kind != model.KindDerivedAudio {
		return nil, errors.NewNotFoundError("Audio")
	}

	return s.transcribe(ctx, audio)
}

func (s *TranscriptionServiceImpl) transcribe(ctx context.Context, audio *model.Artifact) (*dto.TranscriptionResponse, error) {
	text, err := s.transcriber.Transcribe(ctx, audio.StoredPath)
	if err != nil {
		s.logger.Warn("Transcription failed", zap.String("audio_id", audio.ID), zap.Error(err))
		return nil, toAPIError(err, errors.MsgNoAudio, errors.CodeTranscriptionServiceError)
	}
	return &dto.TranscriptionResponse{Transcription: text}, nil
}
