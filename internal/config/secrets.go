package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Secrets are read from the environment, never from the TOML file.
type Secrets struct {
	SentryDSN         string `env:"SENTRY_DSN"`
	AdminUsername     string `env:"VIBEFIT_ADMIN_USERNAME"`
	AdminPasswordHash string `env:"VIBEFIT_ADMIN_PASSWORD_HASH"`
	RedisPassword     string `env:"VIBEFIT_REDIS_PASS"`
	PostgresPassword  string `env:"VIBEFIT_POSTGRES_PASS"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	MCPSecret         string `env:"VIBEFIT_MCP_SECRET"`
	HoneycombEnabled  bool   `env:"HONEYCOMB_ENABLED" envDefault:"false"`
	HoneycombAPIKey   string `env:"HONEYCOMB_API_KEY"`
	OtelServiceName   string `env:"OTEL_SERVICE_NAME"`
}

func LoadSecrets() (*Secrets, error) {
	var s Secrets
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &s, nil
}

// Missing lists the env vars the service can start without, but should not.
func (s *Secrets) Missing() []string {
	var missing []string
	if s.AdminUsername == "" {
		missing = append(missing, "VIBEFIT_ADMIN_USERNAME")
	}
	if s.AdminPasswordHash == "" {
		missing = append(missing, "VIBEFIT_ADMIN_PASSWORD_HASH")
	}
	if s.RedisPassword == "" {
		missing = append(missing, "VIBEFIT_REDIS_PASS")
	}
	if s.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if s.HoneycombEnabled && s.HoneycombAPIKey == "" {
		missing = append(missing, "HONEYCOMB_API_KEY")
	}
	return missing
}
