package artifact

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) Sweep(context.Context) (int, error) {
	s.calls.Add(1)
	return 1, s.err
}

func TestJanitor_SweepsUntilCanceled(t *testing.T) {
	sweeper := &countingSweeper{}
	j := NewJanitor(sweeper, 10*time.Millisecond, zap.NewNop())
	assert.Equal(t, "artifact-janitor", j.Name())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestJanitor_KeepsRunningAfterSweepError(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("database is locked")}
	j := NewJanitor(sweeper, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.NoError(t, j.Run(ctx))
	assert.GreaterOrEqual(t, sweeper.calls.Load(), int32(2))
}
