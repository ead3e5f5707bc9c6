package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Session backends
const (
	SessionCookie = "cookie"
	SessionRedis  = "redis"
	SessionMemory = "memory"
)

// Config holds all configuration for levelup-web
type Config struct {
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	Server  ServerConfig  `envPrefix:"SERVER_"`
	Backend BackendConfig `envPrefix:"BACKEND_"`
	Session SessionConfig `envPrefix:"SESSION_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Content ContentConfig `envPrefix:"CONTENT_"`
	Warmup  WarmupConfig  `envPrefix:"WARMUP_"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"90s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BackendConfig holds the REST backend configuration
type BackendConfig struct {
	URL     string        `env:"URL" envDefault:"https://gs-java-2025-apirest.onrender.com"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

// SessionConfig selects where session identifiers are kept
type SessionConfig struct {
	Backend      string `env:"BACKEND" envDefault:"cookie"`
	Secure       bool   `env:"SECURE" envDefault:"false"`
	CookiePrefix string `env:"COOKIE_PREFIX" envDefault:"levelup_"`
}

// RedisConfig holds Redis configuration, used by the redis session backend
type RedisConfig struct {
	Address  string `env:"ADDRESS" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// ContentConfig points at the catalog/FAQ/team YAML files. Empty uses the
// built-in content.
type ContentConfig struct {
	Dir string `env:"DIR"`
}

// WarmupConfig holds the warm-up worker configuration
type WarmupConfig struct {
	Enabled  bool          `env:"ENABLED" envDefault:"false"`
	Interval time.Duration `env:"INTERVAL" envDefault:"10m"`
	Path     string        `env:"PATH" envDefault:"/cadastro/empresa/lista"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend URL: %q", c.Backend.URL)
	}

	if c.Backend.Timeout <= 0 {
		return errors.New("backend timeout must be positive")
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= c.Backend.Timeout {
		return fmt.Errorf("server write timeout (%s) must exceed backend timeout (%s)", c.Server.WriteTimeout, c.Backend.Timeout)
	}

	switch c.Session.Backend {
	case SessionCookie, SessionMemory:
	case SessionRedis:
		if c.Redis.Address == "" {
			return errors.New("redis address is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend: %q", c.Session.Backend)
	}

	if c.Warmup.Enabled && c.Warmup.Interval <= 0 {
		return errors.New("warmup interval must be positive")
	}

	return nil
}
