package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.TickInterval != 5*time.Second {
		t.Errorf("TickInterval = %v, want 5s", cfg.TickInterval)
	}
	if cfg.PriceFloor != 1 {
		t.Errorf("PriceFloor = %d, want 1", cfg.PriceFloor)
	}
	if !cfg.MaxPriceMove.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("MaxPriceMove = %s, want 0.05", cfg.MaxPriceMove)
	}
	if cfg.StartingCash != 1000000 {
		t.Errorf("StartingCash = %d, want 1000000", cfg.StartingCash)
	}
	if cfg.SettleRetries != 3 {
		t.Errorf("SettleRetries = %d, want 3", cfg.SettleRetries)
	}
	if cfg.JWTSecret != devJWTSecret {
		t.Errorf("JWTSecret = %q, want dev default", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 720*time.Hour {
		t.Errorf("TokenTTL = %v, want 720h", cfg.TokenTTL)
	}
	if cfg.AuthRequired {
		t.Error("AuthRequired = true, want false")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
	if cfg.RedisChannel != "stock_prices_update" {
		t.Errorf("RedisChannel = %q", cfg.RedisChannel)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want 10s", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Errorf("IdleTimeout = %v, want 60s", cfg.IdleTimeout)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TICK_INTERVAL", "1s")
	t.Setenv("PRICE_FLOOR", "0.50")
	t.Setenv("MAX_PRICE_MOVE", "0.1")
	t.Setenv("STARTING_CASH", "2500")
	t.Setenv("SETTLE_RETRIES", "5")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example,,")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_CHANNEL", "prices")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("WRITE_TIMEOUT", "5s")
	t.Setenv("IDLE_TIMEOUT", "30s")
	t.Setenv("SHUTDOWN_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("TickInterval = %v, want 1s", cfg.TickInterval)
	}
	if cfg.PriceFloor != 50 {
		t.Errorf("PriceFloor = %d, want 50", cfg.PriceFloor)
	}
	if !cfg.MaxPriceMove.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("MaxPriceMove = %s, want 0.1", cfg.MaxPriceMove)
	}
	if cfg.StartingCash != 250000 {
		t.Errorf("StartingCash = %d, want 250000", cfg.StartingCash)
	}
	if cfg.SettleRetries != 5 {
		t.Errorf("SettleRetries = %d, want 5", cfg.SettleRetries)
	}
	if cfg.JWTSecret != "s3cret" || !cfg.AuthRequired || cfg.TokenTTL != time.Hour {
		t.Errorf("auth config = (%q, %v, %v)", cfg.JWTSecret, cfg.AuthRequired, cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a.example" || cfg.CORSOrigins[1] != "http://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" || cfg.RedisChannel != "prices" {
		t.Errorf("redis config = (%q, %q)", cfg.RedisURL, cfg.RedisChannel)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 15s", cfg.ShutdownTimeout)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key string
		val string
	}{
		{"PORT", "abc"},
		{"PORT", "0"},
		{"PORT", "70000"},
		{"LOG_LEVEL", "verbose"},
		{"TICK_INTERVAL", "soon"},
		{"TICK_INTERVAL", "0s"},
		{"PRICE_FLOOR", "0"},
		{"PRICE_FLOOR", "0.001"},
		{"PRICE_FLOOR", "cheap"},
		{"MAX_PRICE_MOVE", "0"},
		{"MAX_PRICE_MOVE", "1"},
		{"MAX_PRICE_MOVE", "-0.05"},
		{"MAX_PRICE_MOVE", "lots"},
		{"STARTING_CASH", "-1"},
		{"STARTING_CASH", "10.005"},
		{"SETTLE_RETRIES", "0"},
		{"SETTLE_RETRIES", "x"},
		{"AUTH_REQUIRED", "maybe"},
		{"TOKEN_TTL", "-1h"},
		{"READ_TIMEOUT", "abc"},
		{"WRITE_TIMEOUT", "10"},
		{"IDLE_TIMEOUT", "1y"},
		{"SHUTDOWN_TIMEOUT", "later"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_AuthRequiredNeedsSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_REQUIRED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when AUTH_REQUIRED without JWT_SECRET")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=7070\nSTARTING_CASH=500.25\nLOG_LEVEL=warn\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.Port)
	}
	if cfg.StartingCash != 50025 {
		t.Errorf("StartingCash = %d, want 50025", cfg.StartingCash)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want the environment to win over the file", cfg.LogLevel)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for a missing explicit env file")
	}
}
