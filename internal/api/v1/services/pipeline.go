package services

import (
	"context"

	"go.uber.org/zap"

	"meeting-digest/internal/api/v1/dto"
)

// PipelineServiceImpl implements PipelineService on top of the single-step
// services
type PipelineServiceImpl struct {
	media         MediaService
	transcription TranscriptionService
	summary       SummaryService
	logger        *zap.Logger
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(media MediaService, transcription TranscriptionService, summary SummaryService, logger *zap.Logger) PipelineService {
	return &PipelineServiceImpl{
		media:         media,
		transcription: transcription,
		summary:       summary,
		logger:        logger,
	}
}

// Process runs extract, transcribe and summarize in order and stops at the
// first failing stage. A silent recording yields an empty summary without a
// summarization call.
func (s *PipelineServiceImpl) Process(ctx context.Context, upload dto.Upload) (*dto.PipelineResponse, error) {
	extracted, err := s.media.ExtractAudio(ctx, upload)
	if err != nil {
		return nil, err
	}

	transcribed, err := s.transcription.TranscribeArtifact(ctx, extracted.AudioID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PipelineResponse{
		AudioID:       extracted.AudioID,
		AudioFilename: extracted.AudioFilename,
		Transcription: transcribed.Transcription,
	}

	req := &dto.SummarizeRequest{Text: transcribed.Transcription}
	if req.Blank() {
		s.logger.Info("Empty transcription, skipping summary", zap.String("audio_id", extracted.AudioID))
		return resp, nil
	}

	summarized, err := s.summary.Summarize(ctx, req)
	if err != nil {
		return nil, err
	}
	resp.Summary = summarized.Summary
	return resp, nil
}
