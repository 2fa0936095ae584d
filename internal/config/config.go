// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend modes accepted by BACKEND_MODE.
const (
	BackendAuto   = "auto"
	BackendRemote = "remote"
	BackendStub   = "stub"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links and redirects.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// TrustedProxies lists the CIDRs whose X-Forwarded-* headers are honored.
	TrustedProxies []string

	// Redis holds Redis connection settings. An empty URL selects the
	// in-process stores for workspaces and flash messages.
	Redis RedisConfig

	// Backend holds identity/data provider settings.
	Backend BackendConfig

	// Session holds cookie and per-user state settings.
	Session SessionConfig
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// BackendConfig selects and configures the identity/data provider.
type BackendConfig struct {
	// Mode is "auto", "remote" or "stub".
	Mode string

	// URL is the provider project URL (e.g., "https://xyz.supabase.co").
	URL string

	// APIKey is the provider's public (anon) key sent with every request.
	APIKey string

	// Timeout bounds every provider call.
	Timeout time.Duration

	// Probe makes construction fail when the provider health check fails.
	Probe bool

	// StubLatency is the simulated delay of the in-memory stub.
	StubLatency time.Duration

	// ProductionOrigin replaces localhost origins in verification links.
	ProductionOrigin string

	// DelayedDomains lists email domains whose confirmation mail is known
	// to arrive late. Sign-ups from these domains carry a warning.
	DelayedDomains []string
}

// SessionConfig holds cookie and workspace settings.
type SessionConfig struct {
	// SecureCookies forces the Secure flag even without TLS detection.
	SecureCookies bool

	// WorkspaceTTL is how long a user's edited projects survive.
	WorkspaceTTL time.Duration

	// FlashTTL is how long an undelivered flash message survives.
	FlashTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		TrustedProxies: getEnvList("TRUSTED_PROXIES", []string{
			"127.0.0.0/8", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16", "fd00::/8",
		}),

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},

		Backend: BackendConfig{
			Mode:             strings.ToLower(getEnv("BACKEND_MODE", BackendAuto)),
			URL:              strings.TrimRight(getEnv("BACKEND_URL", ""), "/"),
			APIKey:           getEnv("BACKEND_API_KEY", ""),
			Timeout:          getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
			Probe:            getEnvBool("BACKEND_PROBE", false),
			StubLatency:      getEnvDuration("BACKEND_STUB_LATENCY", 0),
			ProductionOrigin: getEnv("PRODUCTION_ORIGIN", "https://app.geoai.com"),
			DelayedDomains:   getEnvList("DELAYED_DELIVERY_DOMAINS", []string{"outlook.com"}),
		},

		Session: SessionConfig{
			SecureCookies: getEnvBool("SESSION_COOKIE_SECURE", false),
			WorkspaceTTL:  getEnvDuration("WORKSPACE_TTL", 24*time.Hour),
			FlashTTL:      getEnvDuration("FLASH_TTL", 5*time.Minute),
		},
	}

	switch cfg.Backend.Mode {
	case BackendAuto, BackendRemote, BackendStub:
	default:
		return nil, fmt.Errorf("BACKEND_MODE must be one of auto, remote, stub (got %q)", cfg.Backend.Mode)
	}

	// Validate required fields in production. Case-insensitive check catches
	// common variants like "Production", "prod", etc.
	if cfg.IsProduction() && cfg.Backend.Mode == BackendRemote {
		if cfg.Backend.URL == "" {
			return nil, fmt.Errorf("BACKEND_URL is required in production when BACKEND_MODE=remote")
		}
		if cfg.Backend.APIKey == "" {
			return nil, fmt.Errorf("BACKEND_API_KEY is required in production when BACKEND_MODE=remote")
		}
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvBool reads a boolean env var ("true", "1", ...) or returns the default.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "720h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList reads a comma-separated env var. Blank entries are dropped and
// values are lowercased. An explicitly empty variable yields an empty list.
func getEnvList(key string, defaultVal []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
