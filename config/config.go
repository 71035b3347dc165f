/*
Package config loads server configuration from YAML.

PURPOSE:
  One flat configuration struct for the availability server: HTTP listen
  address, SQLite path, optional Redis cache, and metrics toggle. Values
  support ${ENV_VAR} placeholders so secrets stay out of the file.

USAGE:
  cfg, err := config.Load("configs/config.yaml")
  if err != nil {
      log.Fatal(err)
  }

SEE ALSO:
  - cmd/server/main.go: wires the config into the server
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Redis struct {
		Enabled         bool   `yaml:"enabled"`
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
	} `yaml:"monitoring"`

	Query struct {
		DefaultDurationMinutes int `yaml:"default_duration_minutes"`
		MaxWindowDays          int `yaml:"max_window_days"`
	} `yaml:"query"`
}

// Load reads the config file at path, expanding ${ENV_VAR} placeholders.
// A missing path falls back to configs/config.yaml; defaults are filled
// for anything the file leaves out.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.fillDefaults()

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a config usable without any file on disk.
func Default() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/availability.db"
	}
	if c.Redis.Address == "" {
		c.Redis.Address = "localhost:6379"
	}
	if c.Query.DefaultDurationMinutes <= 0 {
		c.Query.DefaultDurationMinutes = 60
	}
	if c.Query.MaxWindowDays <= 0 {
		c.Query.MaxWindowDays = 90
	}
}

// CacheTTL returns the Redis cache TTL, defaulting to one minute.
func (c *Config) CacheTTL() time.Duration {
	if c.Redis.CacheTTLSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}

// MaxWindow returns the longest date range a single query may span.
func (c *Config) MaxWindow() time.Duration {
	return time.Duration(c.Query.MaxWindowDays) * 24 * time.Hour
}
