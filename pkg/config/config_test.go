package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Stock.Ticker != "7186.T" {
		t.Fatalf("ticker default: %q", c.Stock.Ticker)
	}
	if c.Server.Port != 8080 || c.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("server defaults: %+v", c.Server)
	}
	if c.Logger.Level != "info" || c.RateLimit.Backend != "memory" {
		t.Fatalf("logger/ratelimit defaults: %+v %+v", c.Logger, c.RateLimit)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
  read_timeout: 3s
stock:
  ticker: "8306.T"
yahoo:
  timeout: 4s
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Environment != "production" || c.Server.Port != 9090 {
		t.Fatalf("unexpected %+v", c)
	}
	if c.Server.ReadTimeout != 3*time.Second || c.Yahoo.Timeout != 4*time.Second {
		t.Fatalf("durations: %v %v", c.Server.ReadTimeout, c.Yahoo.Timeout)
	}
	if c.Stock.Ticker != "8306.T" {
		t.Fatalf("ticker: %q", c.Stock.Ticker)
	}
	// untouched sections keep their defaults
	if c.Yahoo.BaseURL != "https://query1.finance.yahoo.com" {
		t.Fatalf("base url: %q", c.Yahoo.BaseURL)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, "ratelimit:\n  backend: memcached\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("TICKER", "9984.T")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("RATELIMIT_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")

	c, err := LoadWithEnv("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Stock.Ticker != "9984.T" || c.Server.Port != 7070 {
		t.Fatalf("env overrides not applied: %+v", c)
	}
	if c.RateLimit.Backend != "redis" || c.RateLimit.Redis.Addr != "redis:6379" || c.RateLimit.Redis.DB != 2 {
		t.Fatalf("ratelimit overrides: %+v", c.RateLimit)
	}
}

func TestLoadWithEnvBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "http")
	if _, err := LoadWithEnv(""); err == nil {
		t.Fatalf("expected error for non-numeric port")
	}
}

func TestValidateProvider(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if c.Stock.Provider != "yahoo" {
		t.Fatalf("provider default: %q", c.Stock.Provider)
	}
	c.Stock.Provider = "finnhub"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error without finnhub api key")
	}
	c.Finnhub.APIKey = "key"
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	c.Stock.Provider = "bloomberg"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
