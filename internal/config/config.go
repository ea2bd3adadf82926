package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int `yaml:"port"`
		RateLimitPerSec int `yaml:"rate_limit_per_sec"`
		RateLimitBurst  int `yaml:"rate_limit_burst"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Planning struct {
		MaxRangeDays      int    `yaml:"max_range_days"`
		WeekStart         string `yaml:"week_start"`
		MinSessionMinutes int    `yaml:"min_session_minutes"`
	} `yaml:"planning"`
}

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

// Default returns a config with every field at its default, for running
// without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimitPerSec <= 0 {
		c.Server.RateLimitPerSec = 10
	}
	if c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = 20
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/studyplan.db"
	}
	if c.Planning.MaxRangeDays <= 0 {
		c.Planning.MaxRangeDays = 365
	}
	if c.Planning.WeekStart == "" {
		c.Planning.WeekStart = "monday"
	}
	if c.Planning.MinSessionMinutes <= 0 {
		c.Planning.MinSessionMinutes = 60
	}
}

// WeekStartDay parses the configured week-start weekday.
func (c *Config) WeekStartDay() (time.Weekday, error) {
	switch strings.ToLower(c.Planning.WeekStart) {
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("invalid week_start: %q", c.Planning.WeekStart)
	}
}

// CacheTTL returns the Redis cache TTL, zero when caching is disabled.
func (c *Config) CacheTTL() time.Duration {
	if c.Redis.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}
