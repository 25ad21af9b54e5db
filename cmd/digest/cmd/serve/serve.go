package serve

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meeting-digest/cmd/digest/cmd/bootstrap"
	"meeting-digest/internal/app"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the artifact janitor",
	Long: `Run the HTTP API and the artifact janitor

- Configuration comes from .env, the optional YAML file and the environment
- SIGINT or SIGTERM drains in-flight requests and stops the janitor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap.Load(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		application, cleanup, err := app.InitializeApp(cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize", zap.Error(err))
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("Meeting digest starting",
			zap.String("summary_provider", cfg.Summary.Provider),
			zap.String("storage_dir", cfg.Storage.Dir),
			zap.Duration("artifact_ttl", cfg.Storage.ArtifactTTL))

		if err := application.Run(ctx); err != nil {
			logger.Error("Service stopped with errors", zap.Error(err))
			return err
		}
		logger.Info("Meeting digest stopped")
		return nil
	},
}
