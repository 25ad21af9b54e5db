package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"meeting-digest/internal/api/errors"
	"meeting-digest/internal/api/v1/dto"
	"meeting-digest/internal/app/api"
)

// SummaryServiceImpl implements SummaryService
type SummaryServiceImpl struct {
	summarizer api.Summarizer
	maxChars   int
	logger     *zap.Logger
}

// NewSummaryService creates a new summary service. Texts longer than
// maxChars characters are rejected before any upstream call.
func NewSummaryService(summarizer api.Summarizer, maxChars int, logger *zap.Logger) SummaryService {
	return &SummaryServiceImpl{
		summarizer: summarizer,
		maxChars:   maxChars,
		logger:     logger,
	}
}

// Summarize forwards the text unchanged to the summarizer
func (s *SummaryServiceImpl) Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummaryResponse, error) {
	if req == nil || req.Blank() {
		return nil, errors.NewInvalidArgumentError(errors.MsgNoText, nil)
	}
	if n := utf8.RuneCountInString(req.Text); s.maxChars > 0 && n > s.maxChars {
		return nil, errors.NewInvalidArgumentError("Text too long", map[string]string{
			"text": fmt.Sprintf("%d characters, limit is %d", n, s.maxChars),
		})
	}

	summary, err := s.summarizer.Summarize(ctx, req.Text)
	if err != nil {
		s.logger.Warn("Summarization failed", zap.Int("text_length", len(req.Text)), zap.Error(err))
		return nil, toAPIError(err, errors.MsgNoText, errors.CodeSummarizationServiceError)
	}
	return &dto.SummaryResponse{Summary: summary}, nil
}
