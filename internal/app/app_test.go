package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meeting-digest/internal/app/api/gemini"
	"meeting-digest/internal/app/api/openai/chat"
	"meeting-digest/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.OpenAI.APIKey = "sk-test-key-for-unit-tests"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 18080
	cfg.Server.Environment = "test"
	cfg.Storage.Dir = filepath.Join(dir, "artifacts")
	cfg.Storage.DatabasePath = filepath.Join(dir, "artifacts.db")
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestInitializeApp(t *testing.T) {
	app, cleanup, err := InitializeApp(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, app.Server)
	assert.NotNil(t, app.Janitor)
	assert.NotNil(t, app.Server.Router())
}

func TestInitializeStore(t *testing.T) {
	cfg := testConfig(t)
	store, cleanup, err := InitializeStore(cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	removed, err := store.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.DirExists(t, cfg.Storage.Dir)
}

func TestProvideSummarizer(t *testing.T) {
	cfg := testConfig(t)
	m := provideMetrics(provideRegistry())
	client := provideOpenAIClient(cfg)
	policy := provideRetryPolicy(cfg)
	assert.Equal(t, 2, policy.MaxAttempts)
	assert.Equal(t, 2*time.Minute, policy.Timeout)

	s, err := provideSummarizer(cfg, client, policy, m, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &chat.Summarizer{}, s)

	cfg.Summary.Provider = config.ProviderGemini
	cfg.Gemini.APIKey = "AIzaSyTestKeyForUnitTestsOnly0000"
	s, err = provideSummarizer(cfg, client, policy, m, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &gemini.Summarizer{}, s)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = 0
	app, cleanup, err := InitializeApp(cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
