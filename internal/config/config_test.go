package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("TTS_API_URL")
	os.Unsetenv("REDIS_HOST")
	os.Unsetenv("REDIS_PORT")
	os.Unsetenv("SILENCE_MS")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
	}

	if cfg.TTSAPIURL != "http://localhost:5002/api/tts" {
		t.Errorf("Expected default TTSAPIURL 'http://localhost:5002/api/tts', got '%s'", cfg.TTSAPIURL)
	}

	if cfg.RedisHost != "localhost" {
		t.Errorf("Expected default RedisHost 'localhost', got '%s'", cfg.RedisHost)
	}

	if cfg.RedisPort != 6379 {
		t.Errorf("Expected default RedisPort 6379, got %d", cfg.RedisPort)
	}

	if cfg.SilenceMs != 400 {
		t.Errorf("Expected default SilenceMs 400, got %d", cfg.SilenceMs)
	}

	if cfg.TTSTimeoutSeconds != 30 {
		t.Errorf("Expected default TTSTimeoutSeconds 30, got %d", cfg.TTSTimeoutSeconds)
	}

	if cfg.FetchTimeoutSeconds != 20 {
		t.Errorf("Expected default FetchTimeoutSeconds 20, got %d", cfg.FetchTimeoutSeconds)
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("TTS_API_URL", "http://tts.internal:5002/api/tts")
	os.Setenv("REDIS_HOST", "cache.internal")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("SILENCE_MS", "250")
	defer os.Unsetenv("TTS_API_URL")
	defer os.Unsetenv("REDIS_HOST")
	defer os.Unsetenv("REDIS_PORT")
	defer os.Unsetenv("SILENCE_MS")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() failed: %v", err)
	}

	if cfg.TTSAPIURL != "http://tts.internal:5002/api/tts" {
		t.Errorf("Expected TTSAPIURL override, got '%s'", cfg.TTSAPIURL)
	}

	if cfg.RedisAddr() != "cache.internal:6380" {
		t.Errorf("Expected RedisAddr 'cache.internal:6380', got '%s'", cfg.RedisAddr())
	}

	if cfg.SilenceGap() != 250*time.Millisecond {
		t.Errorf("Expected SilenceGap 250ms, got %v", cfg.SilenceGap())
	}
}

func TestLoad_InvalidSilence(t *testing.T) {
	os.Setenv("SILENCE_MS", "-1")
	defer os.Unsetenv("SILENCE_MS")

	_, err := LoadFromEnv()
	if err == nil {
		t.Error("Expected error for negative SILENCE_MS")
	}
}

func TestConfig_ResilienceDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() failed: %v", err)
	}

	if cfg.CircuitBreakerMaxFailures != 5 {
		t.Errorf("Expected default CircuitBreakerMaxFailures 5, got %d", cfg.CircuitBreakerMaxFailures)
	}

	if cfg.CircuitBreakerResetTimeout != 30 {
		t.Errorf("Expected default CircuitBreakerResetTimeout 30, got %d", cfg.CircuitBreakerResetTimeout)
	}

	if cfg.RetryMaxAttempts != 3 {
		t.Errorf("Expected default RetryMaxAttempts 3, got %d", cfg.RetryMaxAttempts)
	}

	if cfg.RetryInitialBackoff != 100 {
		t.Errorf("Expected default RetryInitialBackoff 100, got %d", cfg.RetryInitialBackoff)
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_KEY", "test-value")
	defer os.Unsetenv("TEST_KEY")

	value := GetEnv("TEST_KEY", "default")
	if value != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", value)
	}

	value = GetEnv("NON_EXISTENT_KEY", "default")
	if value != "default" {
		t.Errorf("Expected 'default', got '%s'", value)
	}
}
