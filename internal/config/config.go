package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultTimezone                = "UTC"
	defaultGeminiModel             = "gemini-2.0-flash"
	defaultCoachTipCacheSeconds    = 60 * 60
	defaultCoachTipCacheSizeMB     = 10
	defaultSessionsCleanupSchedule = "@every 8h"
	defaultLoginRateLimitPerMin    = 15
	defaultCoachRateLimitPerMin    = 10
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	CoachRateLimitAllowedPerMin int      `toml:"coach_rate_limit_allowed_per_min"`
	AllowedOrigins              []string `toml:"allowed_origins"`
	SessionsCleanupSchedule     string   `toml:"sessions_cleanup_schedule"`

	// fitness
	Timezone     string `toml:"timezone"`
	SeedDemoData bool   `toml:"seed_demo_data"`

	// coach
	GeminiModel          string `toml:"gemini_model"`
	CoachTipCacheSeconds int    `toml:"coach_tip_cache_seconds"`
	CoachTipCacheSizeMB  int    `toml:"coach_tip_cache_size_mb"`

	MCPEnabled bool `toml:"mcp_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
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

// Load reads the TOML file at path and returns the section for env,
// with defaults filled in.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	if c.GeminiModel == "" {
		c.GeminiModel = defaultGeminiModel
	}
	if c.CoachTipCacheSeconds <= 0 {
		c.CoachTipCacheSeconds = defaultCoachTipCacheSeconds
	}
	if c.CoachTipCacheSizeMB <= 0 {
		c.CoachTipCacheSizeMB = defaultCoachTipCacheSizeMB
	}
	if c.SessionsCleanupSchedule == "" {
		c.SessionsCleanupSchedule = defaultSessionsCleanupSchedule
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = defaultLoginRateLimitPerMin
	}
	if c.CoachRateLimitAllowedPerMin <= 0 {
		c.CoachRateLimitAllowedPerMin = defaultCoachRateLimitPerMin
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("port not set")
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		return errors.New("postgres host or db name not set")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the time zone calendar days are evaluated in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
