package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Service is a long-running component that stops when its context ends
type Service interface {
	Name() string
	Run(context.Context) error
}

// Group runs services together. The first service to return, with or
// without an error, stops the others.
type Group struct {
	services []Service
	logger   *zap.Logger
}

func NewGroup(logger *zap.Logger, services ...Service) *Group {
	return &Group{services: services, logger: logger}
}

// Run blocks until every service has returned and reports all failures
func (g *Group) Run(ctx context.Context) error {
	runCtx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	var wg sync.WaitGroup
	errCh := make(chan error, len(g.services))
	wg.Add(len(g.services))
	for _, s := range g.services {
		go func(s Service) {
			defer wg.Done()
			defer cancelFn()

			g.logger.Debug("Service starting", zap.String("service", s.Name()))
			if err := s.Run(runCtx); err != nil {
				errCh <- fmt.Errorf("%s: %w", s.Name(), err)
				return
			}
			g.logger.Debug("Service stopped", zap.String("service", s.Name()))
		}(s)
	}

	<-runCtx.Done()
	wg.Wait()

	var result *multierror.Error
	close(errCh)
	for srvErr := range errCh {
		result = multierror.Append(result, srvErr)
	}
	return result.ErrorOrNil()
}
