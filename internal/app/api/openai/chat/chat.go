package chat

import (
	"context"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"meeting-digest/internal/app/api"
	openaiclient "meeting-digest/internal/app/api/openai"
	"meeting-digest/internal/app/api/retry"
	"meeting-digest/internal/app/metrics"
)

const serviceName = "summarization"

// Options control the summary request
type Options struct {
	Model        string
	SystemPrompt string
	MaxTokens    int
	Retry        retry.Policy
}

// Summarizer produces a summary with a chat completion: one system message
// followed by the transcript as the only user message.
type Summarizer struct {
	client  *openai.Client
	opts    Options
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewSummarizer(client *openai.Client, opts Options, m *metrics.Metrics, logger *zap.Logger) *Summarizer {
	s := &Summarizer{
		client:  client,
		opts:    opts,
		metrics: m,
		logger:  logger.With(zap.String("service", serviceName), zap.String("provider", openaiclient.ProviderName)),
	}
	s.opts.Retry.OnRetry = func(attempt int, err error) {
		m.RecordRetry(serviceName)
		s.logger.Warn("Retrying summarization", zap.Int("attempt", attempt), zap.Error(err))
	}
	return s
}

// Summarize returns the first choice's content verbatim
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	start := time.Now()

	request := openai.ChatCompletionRequest{
		Model:     s.opts.Model,
		MaxTokens: s.opts.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: s.opts.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	}

	var summary string
	err := retry.Do(ctx, s.opts.Retry, func(ctx context.Context) error {
		resp, err := s.client.CreateChatCompletion(ctx, request)
		if err != nil {
			return openaiclient.ClassifyError(err)
		}
		if len(resp.Choices) == 0 {
			return &api.UpstreamError{
				Provider: openaiclient.ProviderName,
				Code:     api.CodeEmptyResponse,
				Message:  "completion returned no choices",
			}
		}
		summary = resp.Choices[0].Message.Content
		return nil
	})

	s.metrics.ObserveUpstream(serviceName, start, metrics.Outcome(err))
	if err != nil {
		return "", err
	}

	s.logger.Debug("Summary complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("input_chars", len(text)),
		zap.Int("summary_chars", len(summary)))
	return summary, nil
}
