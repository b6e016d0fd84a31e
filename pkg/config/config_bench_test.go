package config

import (
	"testing"
	"time"
)

// BenchmarkConfig_Validate benchmarks configuration validation
func BenchmarkConfig_Validate(b *testing.B) {
	cfg := &Config{
		LogLevel:          "info",
		HTTPPort:          "8080",
		MarketDataURL:     "http://localhost:9001",
		MarketDataTimeout: 10 * time.Second,
		MarketCacheTTL:    5 * time.Minute,
		MarketCacheSize:   10000,
		WSReadTimeout:     60 * time.Second,
		WSMaxMessageBytes: 4096,
		StorageMode:       "console",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cfg.Validate()
	}
}

// BenchmarkConfig_LoadFromEnv benchmarks environment variable loading
func BenchmarkConfig_LoadFromEnv(b *testing.B) {
	b.Setenv("MARKET_CACHE_TTL", "1m")
	b.Setenv("MARKET_CUTOFF", "2019-08-01T00:00:00Z")
	b.Setenv("STORAGE_MODE", "none")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = LoadFromEnv()
	}
}
