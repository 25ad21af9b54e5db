package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"meeting-digest/internal/app/api"
	"meeting-digest/internal/app/api/retry"
	"meeting-digest/internal/app/metrics"
)

const (
	ProviderName = "gemini"
	serviceName  = "summarization"
)

// Options configure the Gemini summarizer
type Options struct {
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
	MaxTokens    int
	HTTPClient   *http.Client
	Retry        retry.Policy
}

// Summarizer summarizes transcripts with the Gemini API
type Summarizer struct {
	client  *genai.Client
	opts    Options
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewSummarizer(ctx context.Context, opts Options, m *metrics.Metrics, logger *zap.Logger) (*Summarizer, error) {
	config := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	s := &Summarizer{
		client:  client,
		opts:    opts,
		metrics: m,
		logger:  logger.With(zap.String("service", serviceName), zap.String("provider", ProviderName)),
	}
	s.opts.Retry.OnRetry = func(attempt int, err error) {
		m.RecordRetry(serviceName)
		s.logger.Warn("Retrying summarization", zap.Int("attempt", attempt), zap.Error(err))
	}
	return s, nil
}

// Summarize sends the transcript as the only user content with the system
// prompt as system instruction.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	start := time.Now()

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: s.opts.SystemPrompt}},
		},
		MaxOutputTokens: int32(s.opts.MaxTokens),
	}

	var summary string
	err := retry.Do(ctx, s.opts.Retry, func(ctx context.Context) error {
		result, err := s.client.Models.GenerateContent(ctx, s.opts.Model, genai.Text(text), config)
		if err != nil {
			return classifyError(err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var b strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				b.WriteString(part.Text)
			}
			summary = b.String()
			return nil
		}
		return &api.UpstreamError{
			Provider: ProviderName,
			Code:     api.CodeEmptyResponse,
			Message:  "empty response from Gemini",
		}
	})

	s.metrics.ObserveUpstream(serviceName, start, metrics.Outcome(err))
	if err != nil {
		return "", err
	}
	return summary, nil
}

func classifyError(err error) *api.UpstreamError {
	if upErr, ok := api.ClassifyTransport(ProviderName, err); ok {
		return upErr
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return api.FromStatus(ProviderName, apiErr.Code, apiErr.Message, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return api.FromStatus(ProviderName, apiErrPtr.Code, apiErrPtr.Message, err)
	}

	return &api.UpstreamError{
		Provider: ProviderName,
		Code:     api.CodeUnknown,
		Message:  err.Error(),
		Err:      err,
	}
}
