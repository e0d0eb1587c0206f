// Package config reads the navigator's settings from the environment.
//
// Every field carries an env tag, an optional envAlt fallback name and an
// optional default. Load fills the structs below and Validate rejects
// settings the server cannot start with.
package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the full set of settings.
type Config struct {
	Server    ServerConfig
	Source    SourceConfig
	Database  DatabaseConfig
	Navigator NavigatorConfig
	Session   SessionConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
}

// ServerConfig controls the HTTP listener. Cloud Run injects PORT.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// SourceConfig describes where submissions are fetched from. URL takes
// precedence over Database.URL, which takes precedence over File.
type SourceConfig struct {
	URL      string `env:"SOURCE_URL" envAlt:"BACKEND_URL"`
	Path     string `env:"SOURCE_PATH" default:"/internal/form_data"`
	Audience string `env:"SOURCE_AUDIENCE"` // empty means URL

	// IdentityToken is a fixed bearer token. When empty and UseMetadata is
	// set, tokens come from the GCE metadata server.
	IdentityToken string        `env:"SOURCE_IDENTITY_TOKEN"`
	UseMetadata   bool          `env:"SOURCE_USE_METADATA" default:"true"`
	Timeout       time.Duration `env:"SOURCE_TIMEOUT" default:"30s"`

	File string `env:"SOURCE_FILE"` // JSON array, for local runs
}

// DatabaseConfig points at an optional PostgreSQL table of submissions.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL" envAlt:"DB_URL"`
	Table           string        `env:"DB_TABLE" default:"form_data"`
	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// NavigatorConfig holds the defaults of a new session's view.
type NavigatorConfig struct {
	PageSize int    `env:"NAV_PAGE_SIZE" default:"20"`
	Locale   string `env:"NAV_LOCALE" default:"en"` // BCP 47, drives collation
}

// SessionConfig controls browser sessions. When MaxSessions is reached the
// least recently used session is evicted.
type SessionConfig struct {
	CookieName   string        `env:"SESSION_COOKIE_NAME" default:"formnav_session"`
	IdleTimeout  time.Duration `env:"SESSION_IDLE_TIMEOUT" default:"30m"`
	MaxSessions  int           `env:"SESSION_MAX" default:"1000"`
	SecureCookie bool          `env:"SESSION_SECURE_COOKIE" default:"false"`
}

// RateLimitConfig holds per-IP limits in requests per minute.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
	ExportLimit       int  `env:"RATE_LIMIT_EXPORT" default:"20"`
}

// SecurityConfig holds proxy trust, CSP and API key settings. List
// values are comma separated.
type SecurityConfig struct {
	TrustedProxies []string `env:"TRUSTED_PROXIES"` // CIDRs
	EnableCSP      bool     `env:"SECURITY_ENABLE_CSP" default:"true"`
	RequireAPIKey  bool     `env:"REQUIRE_API_KEY" default:"false"` // guards /api
	APIKeys        []string `env:"API_KEYS"`
}

// LoggingConfig selects the slog level and output format.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr is the host:port the server listens on.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Endpoint joins URL and Path. It is empty when no URL is configured.
func (c *SourceConfig) Endpoint() string {
	if c.URL == "" {
		return ""
	}
	path := c.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(c.URL, "/") + path
}

// TokenAudience returns Audience, falling back to URL.
func (c *SourceConfig) TokenAudience() string {
	if c.Audience != "" {
		return c.Audience
	}
	return c.URL
}
