package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"meeting-digest/internal/app/api"
)

func TestDo(t *testing.T) {
	transient := &api.UpstreamError{Provider: "openai", Code: api.CodeNetwork, Retryable: true}
	clientErr := api.FromStatus("openai", 400, "bad audio", nil)

	testCases := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{
			name:      "success first try",
			errs:      []error{nil},
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			errs:      []error{transient, nil},
			wantCalls: 2,
		},
		{
			name:      "transient twice gives up after one retry",
			errs:      []error{transient, transient, nil},
			wantCalls: 2,
			wantErr:   transient,
		},
		{
			name:      "4xx is not retried",
			errs:      []error{clientErr, nil},
			wantCalls: 1,
			wantErr:   clientErr,
		},
		{
			name:      "plain error is not retried",
			errs:      []error{errors.New("boom"), nil},
			wantCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			retries := 0
			p := Policy{
				MaxAttempts: 2,
				Delay:       time.Millisecond,
				OnRetry:     func(int, error) { retries++ },
			}

			err := Do(context.Background(), p, func(ctx context.Context) error {
				e := tc.errs[calls]
				calls++
				return e
			})

			assert.Equal(t, tc.wantCalls, calls)
			assert.Equal(t, tc.wantCalls-1, retries)
			if tc.wantErr != nil {
				assert.Same(t, tc.wantErr, err)
			} else if tc.errs[tc.wantCalls-1] == nil {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDoAppliesPerAttemptTimeout(t *testing.T) {
	p := Policy{MaxAttempts: 2, Timeout: 20 * time.Millisecond}

	calls := 0
	err := Do(context.Background(), p, func(ctx context.Context) error {
		calls++
		<-ctx.Done()
		upErr, _ := api.ClassifyTransport("openai", ctx.Err())
		return upErr
	})

	assert.Equal(t, 1, calls, "timeouts are not retried")
	var upErr *api.UpstreamError
	assert.ErrorAs(t, err, &upErr)
	assert.True(t, upErr.Timeout)
}

func TestDoStopsWhenParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	transient := &api.UpstreamError{Code: api.CodeNetwork, Retryable: true}

	calls := 0
	err := Do(ctx, Policy{MaxAttempts: 2, Delay: time.Hour}, func(ctx context.Context) error {
		calls++
		cancel()
		return transient
	})

	assert.Equal(t, 1, calls)
	assert.Same(t, transient, err)
}
