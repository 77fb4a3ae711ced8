package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Logger       LoggerConfig
	Mock         MockConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig controls the search result cache.
type CacheConfig struct {
	Enabled    bool
	TTLSeconds int
	KeyPrefix  string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// MockConfig shapes the in-memory data set and the simulated network.
type MockConfig struct {
	SeedCount     int
	LatencyMillis int
	RandomSeed    int64
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	randomSeed, err := strconv.ParseInt(getEnv("MOCK_RANDOM_SEED", "42"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MOCK_RANDOM_SEED: %w", err)
	}

	seedCount := getEnvAsInt("MOCK_SEED_COUNT", 1200)
	if seedCount < 0 {
		return nil, fmt.Errorf("invalid MOCK_SEED_COUNT: must not be negative, got %d", seedCount)
	}

	cacheEnabled := getEnvAsBool("CACHE_ENABLED", false)
	cacheTTL := getEnvAsInt("CACHE_TTL_SECONDS", 60)
	if cacheEnabled && cacheTTL <= 0 {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: must be positive when the cache is enabled, got %d", cacheTTL)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "chamados-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			Enabled:    cacheEnabled,
			TTLSeconds: cacheTTL,
			KeyPrefix:  getEnv("CACHE_KEY_PREFIX", "chamados"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Mock: MockConfig{
			SeedCount:     seedCount,
			LatencyMillis: getEnvAsInt("MOCK_LATENCY_MS", 500),
			RandomSeed:    randomSeed,
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Latency returns the simulated network delay.
func (m MockConfig) Latency() time.Duration {
	if m.LatencyMillis <= 0 {
		return 0
	}
	return time.Duration(m.LatencyMillis) * time.Millisecond
}

// TTL returns how long cached pages live.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
