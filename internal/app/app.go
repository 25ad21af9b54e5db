package app

import (
	"context"
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"meeting-digest/internal/api/server"
	"meeting-digest/internal/api/v1/routes"
	"meeting-digest/internal/api/v1/services"
	"meeting-digest/internal/app/api"
	"meeting-digest/internal/app/api/gemini"
	openaiclient "meeting-digest/internal/app/api/openai"
	"meeting-digest/internal/app/api/openai/chat"
	"meeting-digest/internal/app/api/openai/whisper"
	"meeting-digest/internal/app/api/retry"
	"meeting-digest/internal/app/artifact"
	"meeting-digest/internal/app/audio"
	"meeting-digest/internal/app/metrics"
	"meeting-digest/internal/app/repository"
	"meeting-digest/internal/app/repository/sqlite"
	"meeting-digest/internal/app/runner"
	"meeting-digest/internal/app/util/executor"
	"meeting-digest/internal/config"
)

// App is the assembled service: the HTTP server and the artifact janitor
type App struct {
	Server  *server.Server
	Janitor *artifact.Janitor
	logger  *zap.Logger
}

func NewApp(srv *server.Server, janitor *artifact.Janitor, logger *zap.Logger) *App {
	return &App{Server: srv, Janitor: janitor, logger: logger}
}

// Run serves until ctx is canceled or a component fails
func (a *App) Run(ctx context.Context) error {
	return runner.NewGroup(a.logger, a.Server, a.Janitor).Run(ctx)
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}

func provideDB(cfg *config.Config, logger *zap.Logger) (*sql.DB, func(), error) {
	db, err := sqlite.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

func provideArtifactDAO(db *sql.DB) repository.ArtifactDAO {
	return sqlite.NewArtifactDB(db)
}

func provideStore(cfg *config.Config, dao repository.ArtifactDAO, m *metrics.Metrics, logger *zap.Logger) (*artifact.Store, error) {
	return artifact.NewStore(dao, artifact.Options{
		Dir:      cfg.Storage.Dir,
		TTL:      cfg.Storage.ArtifactTTL,
		MaxBytes: cfg.Server.MaxUploadBytes,
	}, m, logger)
}

func provideJanitor(cfg *config.Config, store *artifact.Store, logger *zap.Logger) *artifact.Janitor {
	return artifact.NewJanitor(store, cfg.Storage.CleanupInterval, logger)
}

func provideExtractor(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) *audio.Extractor {
	return audio.NewExtractor(executor.New(), audio.Options{
		FFmpegPath:    cfg.Media.FFmpegPath,
		FFprobePath:   cfg.Media.FFprobePath,
		Bitrate:       cfg.Media.AudioBitrate,
		MaxConcurrent: cfg.Media.MaxConcurrent,
	}, m, logger)
}

func provideOpenAIClient(cfg *config.Config) *openai.Client {
	return openaiclient.NewClient(openaiclient.ClientOptions{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	})
}

func provideRetryPolicy(cfg *config.Config) retry.Policy {
	return retry.Policy{
		MaxAttempts: cfg.Upstream.MaxAttempts,
		Delay:       cfg.Upstream.RetryDelay,
		Timeout:     cfg.Upstream.Timeout,
	}
}

func provideTranscriber(cfg *config.Config, client *openai.Client, policy retry.Policy, m *metrics.Metrics, logger *zap.Logger) api.Transcriber {
	return whisper.NewRemoteTranscriber(client, whisper.Options{
		Model:    cfg.OpenAI.TranscriptionModel,
		Language: cfg.OpenAI.Language,
		Retry:    policy,
	}, m, logger)
}

// provideSummarizer picks the configured provider. Gemini needs its own key;
// OpenAI shares the transcription client.
func provideSummarizer(cfg *config.Config, client *openai.Client, policy retry.Policy, m *metrics.Metrics, logger *zap.Logger) (api.Summarizer, error) {
	if cfg.Summary.Provider == config.ProviderGemini {
		return gemini.NewSummarizer(context.Background(), gemini.Options{
			APIKey:       cfg.Gemini.APIKey,
			Model:        cfg.Summary.Model,
			SystemPrompt: cfg.Summary.SystemPrompt,
			MaxTokens:    cfg.Summary.MaxTokens,
			Retry:        policy,
		}, m, logger)
	}
	return chat.NewSummarizer(client, chat.Options{
		Model:        cfg.Summary.Model,
		SystemPrompt: cfg.Summary.SystemPrompt,
		MaxTokens:    cfg.Summary.MaxTokens,
		Retry:        policy,
	}, m, logger), nil
}

func provideServiceContainer(
	cfg *config.Config,
	store *artifact.Store,
	extractor *audio.Extractor,
	transcriber api.Transcriber,
	summarizer api.Summarizer,
	logger *zap.Logger,
) *routes.ServiceContainer {
	media := services.NewMediaService(store, extractor, logger)
	transcription := services.NewTranscriptionService(store, transcriber, logger)
	summary := services.NewSummaryService(summarizer, cfg.Summary.MaxInputChars, logger)

	return &routes.ServiceContainer{
		MediaService:         media,
		TranscriptionService: transcription,
		SummaryService:       summary,
		PipelineService:      services.NewPipelineService(media, transcription, summary, logger),
		ArtifactService:      services.NewArtifactService(store),
	}
}

func provideServer(cfg *config.Config, container *routes.ServiceContainer, reg *prometheus.Registry, m *metrics.Metrics, logger *zap.Logger) *server.Server {
	return server.NewServer(server.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		Environment:    cfg.Server.Environment,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, container, reg, m, logger)
}
