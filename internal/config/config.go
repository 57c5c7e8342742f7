// Package config provides configuration loading and validation for the stats API.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when neither the config file nor the environment sets a value.
const (
	DefaultPort             = "8080"
	DefaultTimeZone         = "UTC"
	DefaultQueryTimeout     = 5 * time.Second
	DefaultQueryConcurrency = 4
	DefaultMaxConns         = 10
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
)

// Config is the server configuration. Values come from an optional JSON file,
// overridden by environment variables, then filled with defaults.
type Config struct {
	Port             string        `json:"port,omitempty" validate:"required,numeric"`
	DatabaseURL      string        `json:"database_url,omitempty" validate:"required"`
	TimeZone         string        `json:"timezone,omitempty" validate:"required"`
	QueryTimeout     time.Duration `json:"-" validate:"gt=0"`
	QueryConcurrency int           `json:"query_concurrency,omitempty" validate:"min=1,max=64"`
	MaxConns         int32         `json:"max_conns,omitempty" validate:"min=1,max=1000"`
	LogLevel         string        `json:"log_level,omitempty" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat        string        `json:"log_format,omitempty" validate:"oneof=text json"`
	RedisURL         string        `json:"redis_url,omitempty"`

	// QueryTimeoutRaw carries the file form of QueryTimeout ("5s", "500ms").
	QueryTimeoutRaw string `json:"query_timeout,omitempty"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if cfg.QueryTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.QueryTimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("config error: invalid query_timeout: %w", err)
		}
		cfg.QueryTimeout = d
	}

	return &cfg, nil
}

// Load builds the effective configuration. path may be empty, in which case
// only the environment and defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Port:             DefaultPort,
		TimeZone:         DefaultTimeZone,
		QueryTimeout:     DefaultQueryTimeout,
		QueryConcurrency: DefaultQueryConcurrency,
		MaxConns:         DefaultMaxConns,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
	}
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Port, "PORT")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.TimeZone, "TIMEZONE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.RedisURL, "REDIS_URL")

	if v := os.Getenv("QUERY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid QUERY_TIMEOUT: %v", err)
		}
		c.QueryTimeout = d
	}
	if v := os.Getenv("QUERY_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid QUERY_CONCURRENCY: %v", err)
		}
		c.QueryConcurrency = n
	}
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid DB_MAX_CONNS: %v", err)
		}
		c.MaxConns = int32(n)
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	// The database cuts days in the zone named here, so it must be an IANA
	// name both sides resolve identically. "Local" means the host's zone to Go
	// and nothing to PostgreSQL.
	if c.TimeZone == "Local" {
		return fmt.Errorf("config error: timezone must be an IANA name such as %q, not %q", DefaultTimeZone, c.TimeZone)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("config error: unknown timezone %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location returns the reporting time zone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == "" {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TimeZone == "" {
		result.TimeZone = defaults.TimeZone
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}

	if result.QueryTimeout == 0 {
		result.QueryTimeout = defaults.QueryTimeout
	}
	if result.QueryConcurrency == 0 {
		result.QueryConcurrency = defaults.QueryConcurrency
	}
	if result.MaxConns == 0 {
		result.MaxConns = defaults.MaxConns
	}

	return result
}
