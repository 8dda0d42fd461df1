package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port  int  `yaml:"port"`
		Debug bool `yaml:"debug"`
	} `yaml:"app"`

	Jackett struct {
		URL     string `yaml:"url"`
		APIKey  string `yaml:"api_key"`
		Timeout string `yaml:"timeout"`
	} `yaml:"jackett"`

	Cache struct {
		File string `yaml:"file"`
		TTL  string `yaml:"ttl"`
	} `yaml:"cache"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.App.Port = 8000
	cfg.App.Debug = false

	cfg.Jackett.Timeout = "30s"

	cfg.Cache.File = "configured_indexers.json"
	cfg.Cache.TTL = "30m"
}

// JackettTimeout parses the per-call timeout, falling back to 30 seconds on
// an unparsable value.
func (c *Config) JackettTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Jackett.Timeout); err == nil {
		return d
	}
	return 30 * time.Second
}

// CacheTTL parses the registry freshness window, falling back to 30 minutes
// on an unparsable value.
func (c *Config) CacheTTL() time.Duration {
	if d, err := time.ParseDuration(c.Cache.TTL); err == nil {
		return d
	}
	return 30 * time.Minute
}

// loadFromEnv applies the environment overrides. A .env file next to the
// binary is honored when present. Absent JACKETT_API_URL/API_KEY are not
// validated here; upstream requests fail lazily instead.
func loadFromEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("JACKETT_API_URL"); v != "" {
		cfg.Jackett.URL = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.Jackett.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
}
