package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the narration service
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"8080"`

	// TTS backend configuration. The backend accepts a raw UTF-8 sentence as
	// the POST body and responds with a WAV payload.
	TTSAPIURL         string `envconfig:"TTS_API_URL" default:"http://localhost:5002/api/tts"`
	TTSTimeoutSeconds int    `envconfig:"TTS_TIMEOUT_SECONDS" default:"30"`

	// Redis cache configuration. Synthesized audio is cached per sanitized
	// sentence with no TTL.
	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort int    `envconfig:"REDIS_PORT" default:"6379"`

	// Article fetching configuration
	FetchTimeoutSeconds int `envconfig:"FETCH_TIMEOUT_SECONDS" default:"20"`

	// Assembly configuration
	SilenceMs int `envconfig:"SILENCE_MS" default:"400"` // Gap inserted after each sentence

	// Resilience configuration
	CircuitBreakerMaxFailures  int `envconfig:"CIRCUIT_BREAKER_MAX_FAILURES" default:"5"`   // Failures before opening circuit
	CircuitBreakerResetTimeout int `envconfig:"CIRCUIT_BREAKER_RESET_TIMEOUT" default:"30"` // Seconds before attempting recovery
	RetryMaxAttempts           int `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`             // Maximum synthesis attempts per sentence
	RetryInitialBackoff        int `envconfig:"RETRY_INITIAL_BACKOFF" default:"100"`        // Initial backoff in milliseconds

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.TTSAPIURL == "" {
		return nil, fmt.Errorf("TTS_API_URL must not be empty")
	}
	if cfg.SilenceMs < 0 {
		return nil, fmt.Errorf("SILENCE_MS must not be negative")
	}

	return &cfg, nil
}

// RedisAddr returns the host:port address of the Redis cache store
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// TTSTimeout returns the per-request synthesis timeout as a duration
func (c *Config) TTSTimeout() time.Duration {
	return time.Duration(c.TTSTimeoutSeconds) * time.Second
}

// FetchTimeout returns the article fetch timeout as a duration
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// SilenceGap returns the inter-sentence silence duration
func (c *Config) SilenceGap() time.Duration {
	return time.Duration(c.SilenceMs) * time.Millisecond
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
