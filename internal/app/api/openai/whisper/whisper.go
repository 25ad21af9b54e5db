package whisper

import (
	"context"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	openaiclient "meeting-digest/internal/app/api/openai"
	"meeting-digest/internal/app/api/retry"
	"meeting-digest/internal/app/metrics"
)

const serviceName = "transcription"

// Options control the transcription request
type Options struct {
	Model    string
	Language string
	Prompt   string
	Retry    retry.Policy
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client  *openai.Client
	opts    Options
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, opts Options, m *metrics.Metrics, logger *zap.Logger) *RemoteTranscriber {
	if opts.Model == "" {
		opts.Model = openai.Whisper1
	}
	rt := &RemoteTranscriber{
		client:  client,
		opts:    opts,
		metrics: m,
		logger:  logger.With(zap.String("service", serviceName)),
	}
	rt.opts.Retry.OnRetry = func(attempt int, err error) {
		m.RecordRetry(serviceName)
		rt.logger.Warn("Retrying transcription", zap.Int("attempt", attempt), zap.Error(err))
	}
	return rt
}

// Transcribe uploads the audio file and returns the text verbatim. The file
// is reopened on every attempt.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	start := time.Now()

	req := openai.AudioRequest{
		Model:    rt.opts.Model,
		FilePath: audioPath,
		Language: rt.opts.Language,
		Prompt:   rt.opts.Prompt,
	}

	var text string
	err := retry.Do(ctx, rt.opts.Retry, func(ctx context.Context) error {
		resp, err := rt.client.CreateTranscription(ctx, req)
		if err != nil {
			return openaiclient.ClassifyError(err)
		}
		text = resp.Text
		return nil
	})

	rt.metrics.ObserveUpstream(serviceName, start, metrics.Outcome(err))
	if err != nil {
		return "", err
	}

	rt.logger.Debug("Transcription complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(text)))
	return text, nil
}
