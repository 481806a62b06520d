package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP settings
	ListenAddr string

	// Feed settings
	FeedsConfigPath string
	MaxPerSource    int

	// Aggregation settings
	PerSourceTimeout time.Duration
	OverallTimeout   time.Duration
	FetchConcurrency int
	MaxResponseBytes int64

	// Cache settings
	CacheTTL      time.Duration
	RedisAddr     string // empty disables the shared tier
	RedisPassword string
	RedisDB       int

	// Feed response settings
	DefaultLimit int

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		ListenAddr:       ":8080",
		FeedsConfigPath:  "configs/feeds.yaml",
		MaxPerSource:     2,
		PerSourceTimeout: 5 * time.Second,
		OverallTimeout:   9 * time.Second,
		FetchConcurrency: 10,
		MaxResponseBytes: 2 << 20,
		CacheTTL:         180 * time.Second,
		DefaultLimit:     10,
	}

	// Load from environment
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if path := os.Getenv("FEEDS_CONFIG_PATH"); path != "" {
		cfg.FeedsConfigPath = path
	}
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getEnvIntOrDefault("REDIS_DB", 0)

	cfg.MaxPerSource = getEnvIntOrDefault("MAX_PER_SOURCE", cfg.MaxPerSource)
	cfg.FetchConcurrency = getEnvIntOrDefault("FETCH_CONCURRENCY", cfg.FetchConcurrency)
	cfg.DefaultLimit = getEnvIntOrDefault("DEFAULT_LIMIT", cfg.DefaultLimit)

	cfg.PerSourceTimeout = getEnvDurationOrDefault("PER_SOURCE_TIMEOUT", cfg.PerSourceTimeout)
	cfg.OverallTimeout = getEnvDurationOrDefault("OVERALL_TIMEOUT", cfg.OverallTimeout)
	cfg.CacheTTL = getEnvDurationOrDefault("CACHE_TTL", cfg.CacheTTL)

	if v := os.Getenv("MAX_RESPONSE_BYTES"); v != "" {
		if val, err := strconv.ParseInt(v, 10, 64); err == nil && val > 0 {
			cfg.MaxResponseBytes = val
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.FeedsConfigPath == "" {
		return fmt.Errorf("FEEDS_CONFIG_PATH is required")
	}
	if c.FetchConcurrency <= 0 {
		return fmt.Errorf("FETCH_CONCURRENCY must be positive")
	}
	if c.PerSourceTimeout <= 0 || c.OverallTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.OverallTimeout < c.PerSourceTimeout {
		return fmt.Errorf("OVERALL_TIMEOUT must not be shorter than PER_SOURCE_TIMEOUT")
	}
	if c.DefaultLimit < 5 || c.DefaultLimit > 100 {
		return fmt.Errorf("DEFAULT_LIMIT must be within [5,100]")
	}
	return nil
}
