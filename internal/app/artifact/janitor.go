package artifact

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper removes expired artifacts
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Janitor periodically sweeps expired artifacts until its context ends
type Janitor struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *zap.Logger
}

func NewJanitor(sweeper Sweeper, interval time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With(zap.String("component", "janitor")),
	}
}

func (j *Janitor) Name() string {
	return "artifact-janitor"
}

// Run sweeps once immediately, then on every tick. Sweep failures are
// logged; only context cancellation stops the loop.
func (j *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	removed, err := j.sweeper.Sweep(ctx)
	if err != nil && ctx.Err() == nil {
		j.logger.Warn("Artifact sweep incomplete", zap.Int("removed", removed), zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("Expired artifacts removed", zap.Int("removed", removed))
	}
}
