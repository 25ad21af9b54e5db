package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOpenAIKey = "sk-1234567890abcdef1234567890abcdef"

func TestLoad(t *testing.T) {
	testCases := []struct {
		name          string
		env           map[string]string
		expectError   bool
		errorContains string
		check         func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults with only an API key",
			env:  map[string]string{"OPENAI_API_KEY": testOpenAIKey},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPort, cfg.Server.Port)
				assert.Equal(t, DefaultTranscriptionModel, cfg.OpenAI.TranscriptionModel)
				assert.Equal(t, DefaultSummaryModel, cfg.Summary.Model)
				assert.Equal(t, DefaultSummaryMaxTokens, cfg.Summary.MaxTokens)
				assert.Equal(t, DefaultSummarySystemPrompt, cfg.Summary.SystemPrompt)
				assert.Equal(t, DefaultUpstreamTimeout, cfg.Upstream.Timeout)
				assert.Equal(t, DefaultUpstreamMaxAttempts, cfg.Upstream.MaxAttempts)
				assert.Equal(t, DefaultArtifactTTL, cfg.Storage.ArtifactTTL)
				assert.True(t, cfg.IsDevelopment())
			},
		},
		{
			name:          "missing API key fails fast",
			env:           map[string]string{"OPENAI_API_KEY": ""},
			expectError:   true,
			errorContains: "OpenAI API key is required",
		},
		{
			name:          "invalid OpenAI key format",
			env:           map[string]string{"OPENAI_API_KEY": "invalid-key"},
			expectError:   true,
			errorContains: "must start with 'sk-'",
		},
		{
			name: "custom base URL skips key format check",
			env: map[string]string{
				"OPENAI_API_KEY":  "local-key",
				"OPENAI_BASE_URL": "http://localhost:8080/v1/",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:8080/v1", cfg.OpenAI.BaseURL)
			},
		},
		{
			name: "environment overrides",
			env: map[string]string{
				"OPENAI_API_KEY":        testOpenAIKey,
				"PORT":                  "8081",
				"UPSTREAM_TIMEOUT":      "30s",
				"UPSTREAM_MAX_ATTEMPTS": "1",
				"SUMMARY_MAX_TOKENS":    "150",
				"LOG_LEVEL":             "DEBUG",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8081, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
				assert.Equal(t, 1, cfg.Upstream.MaxAttempts)
				assert.Equal(t, 150, cfg.Summary.MaxTokens)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "gemini provider requires its key",
			env: map[string]string{
				"OPENAI_API_KEY":   testOpenAIKey,
				"SUMMARY_PROVIDER": "gemini",
			},
			expectError:   true,
			errorContains: "Gemini API key is required",
		},
		{
			name: "gemini provider picks gemini model",
			env: map[string]string{
				"OPENAI_API_KEY":   testOpenAIKey,
				"SUMMARY_PROVIDER": "Gemini",
				"GEMINI_API_KEY":   "AIzaTest-1234567890abcdef1234567890",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ProviderGemini, cfg.Summary.Provider)
				assert.Equal(t, DefaultGeminiModel, cfg.Summary.Model)
			},
		},
		{
			name: "unknown provider",
			env: map[string]string{
				"OPENAI_API_KEY":   testOpenAIKey,
				"SUMMARY_PROVIDER": "anthropic",
			},
			expectError:   true,
			errorContains: "unknown summary provider",
		},
		{
			name: "too many attempts",
			env: map[string]string{
				"OPENAI_API_KEY":        testOpenAIKey,
				"UPSTREAM_MAX_ATTEMPTS": "5",
			},
			expectError:   true,
			errorContains: "attempts too high",
		},
		{
			name: "malformed duration",
			env: map[string]string{
				"OPENAI_API_KEY":   testOpenAIKey,
				"UPSTREAM_TIMEOUT": "soon",
			},
			expectError:   true,
			errorContains: "failed to parse environment",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load("")

			if tc.expectError {
				require.Error(t, err)
				if tc.errorContains != "" {
					assert.Contains(t, err.Error(), tc.errorContains)
				}
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", testOpenAIKey)
	t.Setenv("PORT", "9000")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
  max_upload_bytes: 1048576
summary:
  max_tokens: 120
storage:
  dir: /tmp/digest
  artifact_ttl: 10m
upstream:
  timeout: 45s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port, "environment overrides file")
	assert.Equal(t, int64(1048576), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 120, cfg.Summary.MaxTokens)
	assert.Equal(t, "/tmp/digest", cfg.Storage.Dir)
	assert.Equal(t, 10*time.Minute, cfg.Storage.ArtifactTTL)
	assert.Equal(t, 45*time.Second, cfg.Upstream.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", testOpenAIKey)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// clearEnv blanks every variable the loader reads so the host environment
// cannot leak into a test case.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		ConfigPathEnv, "OPENAI_API_KEY", "OPENAI_BASE_URL", "GEMINI_API_KEY",
		"SUMMARY_PROVIDER", "SUMMARY_MODEL", "SUMMARY_MAX_TOKENS", "PORT", "APP_ENV",
		"UPSTREAM_TIMEOUT", "UPSTREAM_MAX_ATTEMPTS", "UPSTREAM_RETRY_DELAY", "LOG_LEVEL",
		"STORAGE_DIR", "ARTIFACT_TTL", "MAX_UPLOAD_BYTES",
	} {
		t.Setenv(key, "")
	}
}
