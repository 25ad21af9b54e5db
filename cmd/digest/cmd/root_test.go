package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// chdir keeps .env files of the developer's checkout out of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0\n", out)
}

func TestCleanupCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("OPENAI_API_KEY", "sk-test-key-for-unit-tests")
	t.Setenv("STORAGE_DIR", filepath.Join(dir, "artifacts"))
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "artifacts.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 0 expired artifacts")
}

func TestCleanupCommandRequiresAPIKey(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	_, err := execute(t, "cleanup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API key is required")
}
