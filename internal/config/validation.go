package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
)

var (
	validEnvironments = []string{"development", "staging", "production", "test"}
	validProviders    = []string{ProviderOpenAI, ProviderGemini}
	validLogLevels    = []string{"debug", "info", "warn", "error"}
)

// ValidateTimeout validates a positive duration bounded by max
func ValidateTimeout(timeout time.Duration, name string, max time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	if timeout > max {
		return fmt.Errorf("%s too large (max %s)", name, max)
	}
	return nil
}

// ValidateConcurrency validates concurrency setting
func ValidateConcurrency(concurrency int, name string) error {
	if concurrency <= 0 {
		return fmt.Errorf("%s concurrency must be positive", name)
	}
	if concurrency > 100 {
		return fmt.Errorf("%s concurrency too high (max 100)", name)
	}
	return nil
}

// ValidateAttempts validates the total number of attempts for one upstream call
func ValidateAttempts(attempts int, name string) error {
	if attempts < 1 {
		return fmt.Errorf("%s attempts must be at least 1", name)
	}
	if attempts > 3 {
		return fmt.Errorf("%s attempts too high (max 3)", name)
	}
	return nil
}

// ValidateRetryDelay validates retry delay
func ValidateRetryDelay(delay time.Duration, name string) error {
	if delay < 0 {
		return fmt.Errorf("%s retry delay cannot be negative", name)
	}
	if delay > time.Minute {
		return fmt.Errorf("%s retry delay too high (max 60 seconds)", name)
	}
	return nil
}

// ValidateAPIKey validates API key presence and, when checkFormat is set,
// the vendor prefix.
func ValidateAPIKey(apiKey string, keyType string, checkFormat bool) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}
	if !checkFormat {
		return nil
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return fmt.Errorf("invalid OpenAI API key format: must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return fmt.Errorf("invalid OpenAI API key format: too short")
		}
	case "Gemini":
		if !strings.HasPrefix(apiKey, "AIza") {
			return fmt.Errorf("invalid Gemini API key format: must start with 'AIza'")
		}
		if len(apiKey) < 30 {
			return fmt.Errorf("invalid Gemini API key format: too short")
		}
	}

	return nil
}

// ValidateURL validates an absolute http(s) URL
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must start with http:// or https://", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}

// ValidatePort validates port number
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d out of range (must be between 1 and 65535)", port)
	}
	return nil
}

// ValidateEnvironment validates the deployment environment name
func ValidateEnvironment(environment string) error {
	if !lo.Contains(validEnvironments, environment) {
		return fmt.Errorf("unknown environment %q (valid: %s)", environment, strings.Join(validEnvironments, ", "))
	}
	return nil
}

// ValidateProvider validates the summary provider name
func ValidateProvider(provider string) error {
	if !lo.Contains(validProviders, provider) {
		return fmt.Errorf("unknown summary provider %q (valid: %s)", provider, strings.Join(validProviders, ", "))
	}
	return nil
}

// ValidateLogLevel validates log level
func ValidateLogLevel(level string) error {
	if !lo.Contains(validLogLevels, level) {
		return fmt.Errorf("unknown log level %q (valid: %s)", level, strings.Join(validLogLevels, ", "))
	}
	return nil
}
