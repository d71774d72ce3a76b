// Package config loads econiz settings from a YAML file with ECONIZ_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/econiz/internal/llm"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the top-level configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	LLM     LLMConfig     `yaml:"llm"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Mode  string `yaml:"mode"`  // dev | prod
	Level string `yaml:"level"` // optional override
}

// StorageConfig selects the progress backend.
type StorageConfig struct {
	Backend     string `yaml:"backend"`
	Path        string `yaml:"path"` // SQLite file; empty means the default data dir
	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// CatalogConfig points at a concept catalog. Empty Path uses the embedded one.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LLMConfig holds the non-secret LLM settings. API keys only come from
// the environment.
type LLMConfig struct {
	Provider string        `yaml:"provider"` // empty: auto-detect
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
	Retry    RetryConfig   `yaml:"retry"`
}

// RetryConfig mirrors llm.RetryConfig's attempt count.
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
		Log:     LogConfig{Mode: "dev"},
		Storage: StorageConfig{Backend: BackendSQLite, RedisPrefix: "econiz:"},
		LLM: LLMConfig{
			Timeout: 30 * time.Second,
			Retry:   RetryConfig{MaxAttempts: 1},
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/econiz/config.yaml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "econiz", "config.yaml"), nil
}

// Load reads the config at path, applies env overrides and validates the
// result. With an empty path the default location is tried and a missing
// file yields defaults; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setFromEnv(&c.Server.Addr, "ECONIZ_ADDR")
	setFromEnv(&c.Log.Mode, "ECONIZ_LOG_MODE")
	setFromEnv(&c.Log.Level, "ECONIZ_LOG_LEVEL")
	setFromEnv(&c.Storage.Backend, "ECONIZ_STORAGE")
	setFromEnv(&c.Storage.Path, "ECONIZ_DB")
	setFromEnv(&c.Storage.RedisAddr, "ECONIZ_REDIS_ADDR")
	setFromEnv(&c.Catalog.Path, "ECONIZ_CATALOG")
	setFromEnv(&c.LLM.Provider, "ECONIZ_LLM_PROVIDER")

	if v := os.Getenv("ECONIZ_LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ECONIZ_LLM_TIMEOUT: %w", err)
		}
		c.LLM.Timeout = d
	}
	if v := os.Getenv("ECONIZ_LLM_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ECONIZ_LLM_MAX_ATTEMPTS: %w", err)
		}
		c.LLM.Retry.MaxAttempts = n
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks enumerated values and required companions.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want sqlite, redis or memory)", c.Storage.Backend)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	return nil
}

// LLMSettings merges this config with the API keys found in the
// environment. When no provider is named, the first one with a key wins.
func (c *Config) LLMSettings() llm.Config {
	cfg := llm.ConfigFromEnv()
	cfg.FillStandardKeys()

	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	} else if cfg.Validate() != nil {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg.Provider = found.Provider
		}
	}
	cfg.SetModel(c.LLM.Model)

	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	if c.LLM.Retry.MaxAttempts > 0 {
		cfg.Retry.MaxAttempts = c.LLM.Retry.MaxAttempts
	}
	return cfg
}
