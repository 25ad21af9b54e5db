package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

// Summary providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Defaults
const (
	DefaultHost                = "0.0.0.0"
	DefaultPort                = 5000
	DefaultEnvironment         = "development"
	DefaultMaxUploadBytes      = 200 << 20
	DefaultTranscriptionModel  = "whisper-1"
	DefaultSummaryModel        = "gpt-4o"
	DefaultGeminiModel         = "gemini-2.5-flash"
	DefaultSummaryMaxTokens    = 300
	DefaultSummarySystemPrompt = "You summarize meeting transcripts concisely."
	DefaultSummaryMaxChars     = 400_000
	DefaultStorageDir          = "data/artifacts"
	DefaultDatabasePath        = "data/artifacts.db"
	DefaultArtifactTTL         = time.Hour
	DefaultCleanupInterval     = 5 * time.Minute
	DefaultFFmpegPath          = "ffmpeg"
	DefaultFFprobePath         = "ffprobe"
	DefaultAudioBitrate        = "128k"
	DefaultUpstreamTimeout     = 2 * time.Minute
	DefaultUpstreamMaxAttempts = 2
	DefaultUpstreamRetryDelay  = time.Second
	DefaultLogLevel            = "info"
)

// ConfigPathEnv names the variable that points at an optional YAML config file.
const ConfigPathEnv = "DIGEST_CONFIG"

// Config is the complete service configuration. It is built once at startup
// and passed explicitly to every component.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Summary  SummaryConfig  `yaml:"summary"`
	Storage  StorageConfig  `yaml:"storage"`
	Media    MediaConfig    `yaml:"media"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Host           string        `yaml:"host" env:"HOST"`
	Port           int           `yaml:"port" env:"PORT"`
	Environment    string        `yaml:"environment" env:"APP_ENV"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

type OpenAIConfig struct {
	APIKey             string `yaml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL            string `yaml:"base_url" env:"OPENAI_BASE_URL"`
	TranscriptionModel string `yaml:"transcription_model" env:"TRANSCRIPTION_MODEL"`
	Language           string `yaml:"language" env:"TRANSCRIPTION_LANGUAGE"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
}

type SummaryConfig struct {
	Provider      string `yaml:"provider" env:"SUMMARY_PROVIDER"`
	Model         string `yaml:"model" env:"SUMMARY_MODEL"`
	MaxTokens     int    `yaml:"max_tokens" env:"SUMMARY_MAX_TOKENS"`
	SystemPrompt  string `yaml:"system_prompt" env:"SUMMARY_SYSTEM_PROMPT"`
	MaxInputChars int    `yaml:"max_input_chars" env:"SUMMARY_MAX_INPUT_CHARS"`
}

type StorageConfig struct {
	Dir             string        `yaml:"dir" env:"STORAGE_DIR"`
	DatabasePath    string        `yaml:"database_path" env:"DATABASE_PATH"`
	ArtifactTTL     time.Duration `yaml:"artifact_ttl" env:"ARTIFACT_TTL"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"CLEANUP_INTERVAL"`
}

type MediaConfig struct {
	FFmpegPath    string `yaml:"ffmpeg_path" env:"FFMPEG_PATH"`
	FFprobePath   string `yaml:"ffprobe_path" env:"FFPROBE_PATH"`
	AudioBitrate  string `yaml:"audio_bitrate" env:"AUDIO_BITRATE"`
	MaxConcurrent int    `yaml:"max_concurrent" env:"MAX_CONCURRENT_EXTRACTIONS"`
}

type UpstreamConfig struct {
	Timeout     time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT"`
	MaxAttempts int           `yaml:"max_attempts" env:"UPSTREAM_MAX_ATTEMPTS"`
	RetryDelay  time.Duration `yaml:"retry_delay" env:"UPSTREAM_RETRY_DELAY"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == DefaultEnvironment
}

// Load builds the configuration: .env file, then the optional YAML file at
// path (or $DIGEST_CONFIG), then environment variables. The result is
// validated before it is returned.
func Load(path string) (*Config, error) {
	if _, err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}

	cfg := &Config{}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate applies defaults and reports every invalid setting at once.
func (c *Config) Validate() error {
	c.applyDefaults()

	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(ValidatePort(c.Server.Port))
	add(ValidateEnvironment(c.Server.Environment))
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max upload bytes must be positive"))
	}

	add(ValidateAPIKey(c.OpenAI.APIKey, "OpenAI", c.OpenAI.BaseURL == ""))
	if c.OpenAI.BaseURL != "" {
		add(ValidateURL(c.OpenAI.BaseURL))
	}

	add(ValidateProvider(c.Summary.Provider))
	if c.Summary.Provider == ProviderGemini {
		add(ValidateAPIKey(c.Gemini.APIKey, "Gemini", true))
	}
	if c.Summary.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("summary max tokens must be positive"))
	}
	if c.Summary.MaxInputChars <= 0 {
		errs = append(errs, fmt.Errorf("summary max input chars must be positive"))
	}

	add(ValidateTimeout(c.Storage.ArtifactTTL, "artifact TTL", 7*24*time.Hour))
	add(ValidateTimeout(c.Storage.CleanupInterval, "cleanup interval", 24*time.Hour))
	add(ValidateConcurrency(c.Media.MaxConcurrent, "extraction"))

	add(ValidateTimeout(c.Upstream.Timeout, "upstream", 30*time.Minute))
	add(ValidateAttempts(c.Upstream.MaxAttempts, "upstream"))
	add(ValidateRetryDelay(c.Upstream.RetryDelay, "upstream"))

	add(ValidateLogLevel(c.Logging.Level))

	return errors.Join(errs...)
}

func (c *Config) applyDefaults() {
	setString(&c.Server.Host, DefaultHost)
	setInt(&c.Server.Port, DefaultPort)
	setString(&c.Server.Environment, DefaultEnvironment)
	setDuration(&c.Server.ReadTimeout, 5*time.Minute)
	setDuration(&c.Server.WriteTimeout, 10*time.Minute)
	setDuration(&c.Server.IdleTimeout, 2*time.Minute)
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}

	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	c.OpenAI.BaseURL = strings.TrimRight(strings.TrimSpace(c.OpenAI.BaseURL), "/")
	setString(&c.OpenAI.TranscriptionModel, DefaultTranscriptionModel)
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)

	c.Summary.Provider = strings.ToLower(strings.TrimSpace(c.Summary.Provider))
	setString(&c.Summary.Provider, ProviderOpenAI)
	if c.Summary.Provider == ProviderGemini {
		setString(&c.Summary.Model, DefaultGeminiModel)
	}
	setString(&c.Summary.Model, DefaultSummaryModel)
	setInt(&c.Summary.MaxTokens, DefaultSummaryMaxTokens)
	setString(&c.Summary.SystemPrompt, DefaultSummarySystemPrompt)
	setInt(&c.Summary.MaxInputChars, DefaultSummaryMaxChars)

	setString(&c.Storage.Dir, DefaultStorageDir)
	setString(&c.Storage.DatabasePath, DefaultDatabasePath)
	setDuration(&c.Storage.ArtifactTTL, DefaultArtifactTTL)
	setDuration(&c.Storage.CleanupInterval, DefaultCleanupInterval)

	setString(&c.Media.FFmpegPath, DefaultFFmpegPath)
	setString(&c.Media.FFprobePath, DefaultFFprobePath)
	setString(&c.Media.AudioBitrate, DefaultAudioBitrate)
	setInt(&c.Media.MaxConcurrent, min(runtime.NumCPU(), 8))

	setDuration(&c.Upstream.Timeout, DefaultUpstreamTimeout)
	setInt(&c.Upstream.MaxAttempts, DefaultUpstreamMaxAttempts)
	if c.Upstream.RetryDelay == 0 {
		c.Upstream.RetryDelay = DefaultUpstreamRetryDelay
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	setString(&c.Logging.Level, DefaultLogLevel)
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setDuration(v *time.Duration, def time.Duration) {
	if *v == 0 {
		*v = def
	}
}
