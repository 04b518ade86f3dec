package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	APIBaseURL            string `yaml:"apiBaseURL"`
	LogLevel              string `yaml:"logLevel"`
	SessionDir            string `yaml:"sessionDir"`
	RedisAddr             string `yaml:"redisAddr"`
	RedisPassword         string `yaml:"redisPassword"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds"`
}

// Load reads config from path (defaults to config.yaml), applies
// environment overrides, then fills defaults. A missing config file is
// not an error; the client runs on defaults alone.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if v := os.Getenv("SHOPFRONT_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("SHOPFRONT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("SHOPFRONT_SESSION_DIR"); v != "" {
		cfg.SessionDir = strings.TrimSpace(v)
	}
	if v := os.Getenv("SHOPFRONT_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = strings.TrimSpace(v)
	}
	if v := os.Getenv("SHOPFRONT_REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("SHOPFRONT_REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.RequestTimeoutSeconds = n
		}
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:5000/api"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.SessionDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.SessionDir = home + "/.shopfront"
		} else {
			cfg.SessionDir = ".shopfront"
		}
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 5
	}
}
