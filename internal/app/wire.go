//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"meeting-digest/internal/app/artifact"
	"meeting-digest/internal/config"
)

var storageSet = wire.NewSet(
	provideRegistry,
	provideMetrics,
	provideDB,
	provideArtifactDAO,
	provideStore,
)

// InitializeApp builds the server and janitor from configuration
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(
		storageSet,
		provideJanitor,
		provideExtractor,
		provideOpenAIClient,
		provideRetryPolicy,
		provideTranscriber,
		provideSummarizer,
		provideServiceContainer,
		provideServer,
		NewApp,
	)
	return &App{}, nil, nil
}

// InitializeStore builds only the artifact store, for maintenance commands
func InitializeStore(cfg *config.Config, logger *zap.Logger) (*artifact.Store, func(), error) {
	wire.Build(storageSet)
	return &artifact.Store{}, nil, nil
}
