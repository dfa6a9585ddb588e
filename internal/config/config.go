package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// storage: badger (default), redis, or memory
	KVBackend string `toml:"kv_backend"`
	DataDir   string `toml:"data_dir"`
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// catalog
	CatalogPath string `toml:"catalog_path"`
	// retention
	RetentionDays          int `toml:"retention_days"`
	RetentionIntervalHours int `toml:"retention_interval_hours"`
	// offline assets cache
	CacheGeneration string   `toml:"cache_generation"`
	AssetsUpstream  string   `toml:"assets_upstream"`
	Assets          []string `toml:"assets"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var tomlFile Toml
	if _, err := toml.DecodeFile(path, &tomlFile); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := tomlFile.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.KVBackend == "" {
		c.KVBackend = "badger"
	}
	if c.RetentionDays <= 0 {
		c.RetentionDays = 90
	}
	if c.RetentionIntervalHours <= 0 {
		c.RetentionIntervalHours = 24
	}
	if c.CacheGeneration == "" {
		c.CacheGeneration = "workout-v1"
	}
}
