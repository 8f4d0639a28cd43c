package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"KabuCard/pkg/logger"
	"KabuCard/pkg/util"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Logger logger.Config `yaml:"logger"`
	Stock  struct {
		Ticker   string `yaml:"ticker" default:"7186.T"`
		Provider string `yaml:"provider" default:"yahoo"`
		Title    string `yaml:"title" default:"横浜フィナンシャルグループ 株価情報"`
		Icon     string `yaml:"icon" default:"🏦"`
		Source   string `yaml:"source" default:"Yahoo Finance"`
	} `yaml:"stock"`
	Yahoo struct {
		BaseURL   string        `yaml:"base_url" default:"https://query1.finance.yahoo.com"`
		CookieURL string        `yaml:"cookie_url" default:"https://fc.yahoo.com"`
		CrumbURL  string        `yaml:"crumb_url" default:"https://query1.finance.yahoo.com/v1/test/getcrumb"`
		UserAgent string        `yaml:"user_agent" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
		Timeout   time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"yahoo"`
	Finnhub struct {
		BaseURL string        `yaml:"base_url" default:"https://finnhub.io"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"finnhub"`
	RateLimit struct {
		Backend      string        `yaml:"backend" default:"memory"`
		Capacity     float64       `yaml:"capacity" default:"5"`
		RefillPerSec float64       `yaml:"refill_per_sec" default:"1"`
		Window       time.Duration `yaml:"window" default:"1s"`
		Redis        struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"kabucard"`
		} `yaml:"redis"`
	} `yaml:"ratelimit"`
}

// Default returns a configuration populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, c.Validate()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TICKER"); v != "" {
		c.Stock.Ticker = v
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		c.Yahoo.BaseURL = v
	}
	if v := os.Getenv("STOCK_PROVIDER"); v != "" {
		c.Stock.Provider = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RateLimit.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		c.RateLimit.Redis.DB = util.ParseIntDefault(v, c.RateLimit.Redis.DB)
	}
	if v := os.Getenv("RATELIMIT_BACKEND"); v != "" {
		c.RateLimit.Backend = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Stock.Ticker == "" {
		return fmt.Errorf("stock.ticker is required")
	}
	switch c.Stock.Provider {
	case "yahoo":
		if c.Yahoo.BaseURL == "" {
			return fmt.Errorf("yahoo.base_url is required")
		}
	case "finnhub":
		if c.Finnhub.APIKey == "" {
			return fmt.Errorf("finnhub.api_key is required for finnhub provider")
		}
	default:
		return fmt.Errorf("stock.provider must be 'yahoo' or 'finnhub', got '%s'", c.Stock.Provider)
	}
	switch c.RateLimit.Backend {
	case "none", "memory":
	case "redis":
		if c.RateLimit.Redis.Addr == "" {
			return fmt.Errorf("ratelimit.redis.addr is required for redis backend")
		}
	default:
		return fmt.Errorf("ratelimit.backend must be 'none', 'memory' or 'redis', got '%s'", c.RateLimit.Backend)
	}
	if c.RateLimit.Backend != "none" && c.RateLimit.Capacity < 1 {
		return fmt.Errorf("ratelimit.capacity must be at least 1")
	}
	return nil
}
