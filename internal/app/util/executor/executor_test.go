package executor

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecute(t *testing.T) {
	requireShell(t)

	out, err := New().Execute(context.Background(), "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestExecuteCapturesStderr(t *testing.T) {
	requireShell(t)

	_, err := New().Execute(context.Background(), "sh", "-c", "echo 'Invalid data found' >&2; exit 1")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "sh", exitErr.Name)
	assert.Equal(t, "Invalid data found", exitErr.Stderr)
	assert.Contains(t, err.Error(), "stderr: Invalid data found")
}

func TestExecuteCancelled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New().Execute(ctx, "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecuteMissingBinary(t *testing.T) {
	_, err := New().Execute(context.Background(), "definitely-not-a-binary-7f3a")
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}
