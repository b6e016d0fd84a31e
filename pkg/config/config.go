package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Market data collaborator
	MarketDataURL     string
	MarketDataTimeout time.Duration
	MarketCacheTTL    time.Duration
	MarketCacheSize   int64

	// Markets ending after this instant are flagged on every quote.
	// Zero disables the flag.
	MarketCutoff time.Time

	// Live quote stream
	WSReadTimeout     time.Duration
	WSMaxMessageBytes int64

	// Quote journal
	StorageMode  string // "postgres", "console" or "none"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
// A .env file in the working directory is read first when present.
func LoadFromEnv() (*Config, error) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cutoff, err := getTimeOrZero("MARKET_CUTOFF")
	if err != nil {
		return nil, fmt.Errorf("parse MARKET_CUTOFF: %w", err)
	}

	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Market data defaults
		MarketDataURL:     getEnvOrDefault("MARKET_DATA_URL", "http://localhost:9001"),
		MarketDataTimeout: getDurationOrDefault("MARKET_DATA_TIMEOUT", 10*time.Second),
		MarketCacheTTL:    getDurationOrDefault("MARKET_CACHE_TTL", 5*time.Minute),
		MarketCacheSize:   int64(getIntOrDefault("MARKET_CACHE_SIZE", 10000)),

		MarketCutoff: cutoff,

		// Live quote stream defaults
		WSReadTimeout:     getDurationOrDefault("WS_READ_TIMEOUT", 60*time.Second),
		WSMaxMessageBytes: int64(getIntOrDefault("WS_MAX_MESSAGE_BYTES", 4096)),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "economics"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "economics123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "order_economics"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.MarketDataURL == "" {
		return fmt.Errorf("MARKET_DATA_URL cannot be empty")
	}

	if c.MarketCacheTTL <= 0 {
		return fmt.Errorf("MARKET_CACHE_TTL must be positive, got %v", c.MarketCacheTTL)
	}

	if c.MarketCacheSize <= 0 {
		return fmt.Errorf("MARKET_CACHE_SIZE must be positive, got %d", c.MarketCacheSize)
	}

	if c.WSMaxMessageBytes <= 0 {
		return fmt.Errorf("WS_MAX_MESSAGE_BYTES must be positive, got %d", c.WSMaxMessageBytes)
	}

	switch c.StorageMode {
	case "postgres", "console", "none":
	default:
		return fmt.Errorf("STORAGE_MODE must be 'postgres', 'console' or 'none', got %q", c.StorageMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getTimeOrZero parses an RFC3339 timestamp. Unlike the other helpers a bad
// value is an error: silently dropping a cutoff would hide market warnings.
func getTimeOrZero(key string) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.RFC3339, value)
}
