package config

import (
	"fmt"
	"net/url"
	"os"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Load reads the configuration from the environment, fills defaults and
// validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := populate(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// populate walks the nested section structs and sets every field that has
// an env tag. Lookup order: env, envAlt, default.
func populate(section reflect.Value) error {
	for i := range section.NumField() {
		spec := section.Type().Field(i)
		target := section.Field(i)
		if !target.CanSet() {
			continue
		}
		if spec.Type.Kind() == reflect.Struct {
			if err := populate(target); err != nil {
				return err
			}
			continue
		}

		name, ok := spec.Tag.Lookup("env")
		if !ok {
			continue
		}
		raw := envValue(name, spec.Tag.Get("envAlt"))
		if raw == "" {
			if spec.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", name)
			}
			raw = spec.Tag.Get("default")
		}
		if raw == "" {
			continue
		}
		if err := assign(target, raw); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", name, raw, err)
		}
	}
	return nil
}

// envValue returns the first non-empty of the named variables.
func envValue(names ...string) string {
	for _, n := range names {
		if n == "" {
			continue
		}
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// assign parses raw into target according to its type.
func assign(target reflect.Value, raw string) error {
	if target.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		target.SetInt(int64(d))
		return nil
	}

	switch target.Kind() {
	case reflect.String:
		target.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		target.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		target.SetBool(b)
	case reflect.Slice:
		if target.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", target.Type().Elem().Kind())
		}
		target.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("unsupported field type: %s", target.Kind())
	}
	return nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// problems collects validation failures so all of them are reported at once.
type problems []string

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Sprintf(format, args...))
	}
}

// Validate reports every invalid setting in one error.
func (c *Config) Validate() error {
	var p problems

	src := c.Source
	p.check(src.URL != "" || src.File != "" || c.Database.URL != "",
		"one of SOURCE_URL, SOURCE_FILE or DATABASE_URL is required")
	if src.URL != "" {
		u, err := url.Parse(src.URL)
		p.check(err == nil && u.Scheme != "" && u.Host != "",
			"SOURCE_URL (%q) must be an absolute URL", src.URL)
	}
	p.check(src.Timeout > 0, "SOURCE_TIMEOUT must be positive")

	if db := c.Database; db.URL != "" {
		p.check(db.MaxConns >= db.MinConns,
			"DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", db.MaxConns, db.MinConns)
		p.check(db.MaxConns > 0, "DB_MAX_CONNS must be positive")
		p.check(db.MinConns >= 0, "DB_MIN_CONNS must be non-negative")
		p.check(tableName.MatchString(db.Table), "DB_TABLE (%q) must be a plain identifier", db.Table)
	}

	p.check(c.Server.Port > 0 && c.Server.Port <= 65535, "SERVER_PORT (%d) must be 1-65535", c.Server.Port)
	p.check(c.Server.ReadTimeout >= 0, "SERVER_READ_TIMEOUT must be non-negative")
	p.check(c.Server.ShutdownTimeout > 0, "SERVER_SHUTDOWN_TIMEOUT must be positive")

	p.check(c.Navigator.PageSize > 0, "NAV_PAGE_SIZE must be positive")
	_, err := language.Parse(c.Navigator.Locale)
	p.check(err == nil, "NAV_LOCALE (%q) is not a valid language tag", c.Navigator.Locale)

	p.check(c.Session.CookieName != "", "SESSION_COOKIE_NAME must not be empty")
	p.check(c.Session.IdleTimeout > 0, "SESSION_IDLE_TIMEOUT must be positive")
	p.check(c.Session.MaxSessions > 0, "SESSION_MAX must be positive")

	if c.Rate.Enabled {
		p.check(c.Rate.RequestsPerMinute > 0, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
		p.check(c.Rate.ExportLimit > 0, "RATE_LIMIT_EXPORT must be positive when rate limiting is enabled")
	}

	p.check(!c.Security.RequireAPIKey || len(c.Security.APIKeys) > 0,
		"REQUIRE_API_KEY is true but API_KEYS is empty")

	p.check(slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Logging.Level)),
		"LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level)
	p.check(slices.Contains([]string{"text", "json"}, strings.ToLower(c.Logging.Format)),
		"LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format)

	if len(p) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(p, "\n  - "))
	}
	return nil
}

// tableName restricts DB_TABLE, which is interpolated into a query.
var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// String describes the configuration for logs with secrets masked.
func (c *Config) String() string {
	sections := []string{
		fmt.Sprintf("Server: {Host: %q, Port: %d}", c.Server.Host, c.Server.Port),
		fmt.Sprintf("Source: {URL: %q, Path: %q, File: %q, IdentityToken: %s}",
			c.Source.URL, c.Source.Path, c.Source.File, mask(c.Source.IdentityToken)),
		fmt.Sprintf("Database: {URL: %s, Table: %q, MaxConns: %d}",
			mask(c.Database.URL), c.Database.Table, c.Database.MaxConns),
		fmt.Sprintf("Navigator: {PageSize: %d, Locale: %q}", c.Navigator.PageSize, c.Navigator.Locale),
		fmt.Sprintf("Session: {IdleTimeout: %s, MaxSessions: %d}", c.Session.IdleTimeout, c.Session.MaxSessions),
		fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d, ExportLimit: %d}",
			c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Rate.ExportLimit),
		fmt.Sprintf("Security: {RequireAPIKey: %v, APIKeys: %d configured}",
			c.Security.RequireAPIKey, len(c.Security.APIKeys)),
		fmt.Sprintf("Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format),
	}
	return "Config{" + strings.Join(sections, ", ") + "}"
}

// mask hides a secret, telling only whether it is set.
func mask(secret string) string {
	if secret == "" {
		return "[UNSET]"
	}
	return "[MASKED]"
}
