package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// minSecretLength applies outside development and test
const minSecretLength = 32

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errors []string
	add := func(field, msg string) {
		errors = append(errors, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.SessionSecret == "" {
		if cfg.Environment == Production {
			add("session_secret", "secret is required")
		} else {
			add("SESSION_SECRET", "environment variable is required")
		}
	} else if (cfg.Environment == Production || cfg.Environment == CI) && len(cfg.SessionSecret) < minSecretLength {
		add("SESSION_SECRET", fmt.Sprintf("must be at least %d characters", minSecretLength))
	}

	switch cfg.GeneratorMode {
	case GeneratorModeMock:
	case GeneratorModeAI:
		if cfg.LLMAPIKey == "" {
			if cfg.Environment == Production {
				add("llm_api_key", "secret is required when GENERATOR_MODE is ai")
			} else {
				add("LLM_API_KEY", "required when GENERATOR_MODE is ai")
			}
		}
	default:
		add("GENERATOR_MODE", fmt.Sprintf("must be %q or %q, got %q", GeneratorModeMock, GeneratorModeAI, cfg.GeneratorMode))
	}

	if cfg.SessionTTL <= 0 {
		add("SESSION_TTL", "must be positive")
	}
	if cfg.MaxSessions <= 0 {
		add("MAX_SESSIONS", "must be positive")
	}
	if cfg.LLMTimeout <= 0 {
		add("LLM_TIMEOUT", "must be positive")
	}
	if cfg.GenerateRateLimit < 0 {
		add("GENERATE_RATE_LIMIT", "must not be negative")
	}
	if cfg.ServerPort == "" {
		add("SERVER_PORT", "environment variable is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
