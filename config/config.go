package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Generator modes
const (
	GeneratorModeMock = "mock"
	GeneratorModeAI   = "ai"
)

// Defaults applied when a key is unset
const (
	DefaultServerPort        = "8080"
	DefaultServerHost        = "0.0.0.0"
	DefaultSessionTTL        = 24 * time.Hour
	DefaultMaxSessions       = 1000
	DefaultLLMTimeout        = 60 * time.Second
	DefaultGenerateRateLimit = 10
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Session configuration
	SessionSecret string
	SessionTTL    time.Duration
	MaxSessions   int

	// Generator configuration
	GeneratorMode string
	LLMAPIKey     string
	LLMAPIURL     string
	LLMModel      string
	LLMTimeout    time.Duration

	// Redis configuration, optional. Without it generation is not rate limited.
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Requests per minute per session on the generate endpoint
	GenerateRateLimit int

	CORSAllowedOrigins []string

	LogLevel string
}

// RedisEnabled reports whether enough Redis settings are present to connect
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	// Load configuration based on environment
	switch env {
	case CI, Test:
		if err := loadEnvConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
		}
	case Development:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDevConfig loads an optional .env file before reading the environment
func loadDevConfig(cfg *Config) error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return loadEnvConfig(cfg)
}

// loadEnvConfig reads every key from environment variables
func loadEnvConfig(cfg *Config) error {
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	key, err := llmKeyFromEnv()
	if err != nil {
		return err
	}
	cfg.LLMAPIKey = key

	return loadCommon(cfg)
}

// loadProdConfig reads secrets from Docker secrets, falling back to the environment
func loadProdConfig(cfg *Config) error {
	cfg.SessionSecret = secretOrEnv("session_secret", "SESSION_SECRET")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD")

	cfg.LLMAPIKey = readSecret("llm_api_key")
	if cfg.LLMAPIKey == "" {
		key, err := llmKeyFromEnv()
		if err != nil {
			return err
		}
		cfg.LLMAPIKey = key
	}

	return loadCommon(cfg)
}

// loadCommon reads the non-secret keys shared by every environment
func loadCommon(cfg *Config) error {
	cfg.ServerPort = getEnv("SERVER_PORT", DefaultServerPort)
	cfg.ServerHost = getEnv("SERVER_HOST", DefaultServerHost)
	cfg.GeneratorMode = strings.ToLower(getEnv("GENERATOR_MODE", GeneratorModeMock))
	cfg.LLMAPIURL = os.Getenv("LLM_API_URL")
	cfg.LLMModel = os.Getenv("LLM_MODEL")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", DefaultSessionTTL); err != nil {
		return err
	}
	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", DefaultLLMTimeout); err != nil {
		return err
	}
	if cfg.MaxSessions, err = getInt("MAX_SESSIONS", DefaultMaxSessions); err != nil {
		return err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return err
	}
	if cfg.GenerateRateLimit, err = getInt("GENERATE_RATE_LIMIT", DefaultGenerateRateLimit); err != nil {
		return err
	}
	return nil
}

// llmKeyFromEnv prefers LLM_API_KEY and falls back to the file named by LLM_API_KEY_FILE
func llmKeyFromEnv() (string, error) {
	if key := os.Getenv("LLM_API_KEY"); key != "" {
		return key, nil
	}
	path := os.Getenv("LLM_API_KEY_FILE")
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read LLM_API_KEY_FILE: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretOrEnv(secret, envVar string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(envVar)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
