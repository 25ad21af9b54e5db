package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type funcService struct {
	name string
	run  func(ctx context.Context) error
}

func (s funcService) Name() string                  { return s.name }
func (s funcService) Run(ctx context.Context) error { return s.run(ctx) }

func untilDone(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestGroup_StopsOnParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := NewGroup(zap.NewNop(),
		funcService{name: "a", run: untilDone},
		funcService{name: "b", run: untilDone},
	)

	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("group did not stop")
	}
}

func TestGroup_FailureStopsOthers(t *testing.T) {
	stopped := make(chan struct{})
	g := NewGroup(zap.NewNop(),
		funcService{name: "server", run: func(context.Context) error { return errors.New("address already in use") }},
		funcService{name: "janitor", run: func(ctx context.Context) error {
			<-ctx.Done()
			close(stopped)
			return nil
		}},
	)

	err := g.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server: address already in use")
	<-stopped
}

func TestGroup_AggregatesErrors(t *testing.T) {
	g := NewGroup(zap.NewNop(),
		funcService{name: "a", run: func(context.Context) error { return errors.New("first") }},
		funcService{name: "b", run: func(ctx context.Context) error {
			<-ctx.Done()
			return errors.New("second")
		}},
	)

	err := g.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a: first")
	assert.Contains(t, err.Error(), "b: second")
}
