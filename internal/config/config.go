package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// assessments
	ProgressCacheTTLSeconds int `toml:"progress_cache_ttl_seconds"`
	CreateRateLimitPerMin   int `toml:"create_rate_limit_per_min"`
	LocalCacheSizeMB        int `toml:"local_cache_size_mb"`
}

func (c *Config) ProgressCacheTTL() time.Duration {
	return time.Duration(c.ProgressCacheTTLSeconds) * time.Second
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development", "ddev", "dockerdev":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the config for env, with
// defaults applied to the unset assessment settings.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	if cfg.ProgressCacheTTLSeconds <= 0 {
		cfg.ProgressCacheTTLSeconds = 300
	}
	if cfg.CreateRateLimitPerMin <= 0 {
		cfg.CreateRateLimitPerMin = 60
	}
	if cfg.LocalCacheSizeMB <= 0 {
		cfg.LocalCacheSizeMB = 16
	}

	return cfg, nil
}
