package config

import (
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	for _, key := range []string{"APP_PORT", "MOCK_SEED_COUNT", "MOCK_LATENCY_MS", "MOCK_RANDOM_SEED", "CACHE_ENABLED", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("expected addr 0.0.0.0:8080, got %s", cfg.App.Addr())
	}
	if cfg.Mock.SeedCount != 1200 {
		t.Errorf("expected SeedCount 1200, got %d", cfg.Mock.SeedCount)
	}
	if cfg.Mock.Latency() != 500*time.Millisecond {
		t.Errorf("expected latency 500ms, got %v", cfg.Mock.Latency())
	}
	if cfg.Mock.RandomSeed != 42 {
		t.Errorf("expected RandomSeed 42, got %d", cfg.Mock.RandomSeed)
	}
	if cfg.Cache.Enabled {
		t.Error("expected cache disabled by default")
	}
	if cfg.Cache.TTL() != time.Minute {
		t.Errorf("expected cache TTL 1m, got %v", cfg.Cache.TTL())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MOCK_SEED_COUNT", "20")
	t.Setenv("MOCK_LATENCY_MS", "0")
	t.Setenv("MOCK_RANDOM_SEED", "7")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.App.Port)
	}
	if cfg.Mock.SeedCount != 20 {
		t.Errorf("expected SeedCount 20, got %d", cfg.Mock.SeedCount)
	}
	if cfg.Mock.Latency() != 0 {
		t.Errorf("expected no latency, got %v", cfg.Mock.Latency())
	}
	if cfg.Mock.RandomSeed != 7 {
		t.Errorf("expected RandomSeed 7, got %d", cfg.Mock.RandomSeed)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled")
	}
	if cfg.App.RequestTimeout() != 0 {
		t.Errorf("expected no request timeout, got %v", cfg.App.RequestTimeout())
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "redis db", key: "REDIS_DB", val: "one"},
		{name: "random seed", key: "MOCK_RANDOM_SEED", val: "abc"},
		{name: "negative seed count", key: "MOCK_SEED_COUNT", val: "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_CacheTTL(t *testing.T) {
	tests := []struct {
		name    string
		enabled string
		ttl     string
		wantErr bool
	}{
		{name: "enabled with zero ttl", enabled: "true", ttl: "0", wantErr: true},
		{name: "enabled with negative ttl", enabled: "true", ttl: "-1", wantErr: true},
		{name: "enabled with positive ttl", enabled: "true", ttl: "30"},
		{name: "disabled with zero ttl", enabled: "false", ttl: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CACHE_ENABLED", tt.enabled)
			t.Setenv("CACHE_TTL_SECONDS", tt.ttl)
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
