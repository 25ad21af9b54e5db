package cleanup

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meeting-digest/cmd/digest/cmd/bootstrap"
	"meeting-digest/internal/app"
)

// Cmd represents the cleanup command
var Cmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove expired artifacts once and exit",
	Long: `Remove expired artifacts once and exit

- Deletes every indexed file whose expiry has passed, including uploads
  orphaned by a crash
- Safe to run while the server is up`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap.Load(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		store, cleanup, err := app.InitializeStore(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		removed, err := store.Sweep(cmd.Context())
		if err != nil {
			logger.Warn("Sweep incomplete", zap.Int("removed", removed), zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired artifacts\n", removed)
		return nil
	},
}
