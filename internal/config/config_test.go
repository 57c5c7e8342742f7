package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "TIMEZONE", "LOG_LEVEL", "LOG_FORMAT",
		"REDIS_URL", "QUERY_TIMEOUT", "QUERY_CONCURRENCY", "DB_MAX_CONNS",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"port": "9090",
		"database_url": "postgres://localhost/recruit",
		"timezone": "Europe/Paris",
		"query_timeout": "750ms",
		"query_concurrency": 2,
		"log_format": "json"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost/recruit", cfg.DatabaseURL)
	assert.Equal(t, "Europe/Paris", cfg.TimeZone)
	assert.Equal(t, 750*time.Millisecond, cfg.QueryTimeout)
	assert.Equal(t, 2, cfg.QueryConcurrency)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"query_timeout": "soon"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query_timeout")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoad_EnvOnlyWithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/recruit")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultTimeZone, cfg.TimeZone)
	assert.Equal(t, DefaultQueryTimeout, cfg.QueryTimeout)
	assert.Equal(t, DefaultQueryConcurrency, cfg.QueryConcurrency)
	assert.Equal(t, int32(DefaultMaxConns), cfg.MaxConns)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{"database_url": "postgres://file/db", "port": "9090", "query_concurrency": 2}`)
	t.Setenv("PORT", "7070")
	t.Setenv("QUERY_CONCURRENCY", "1")
	t.Setenv("QUERY_TIMEOUT", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/db", cfg.DatabaseURL)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 1, cfg.QueryConcurrency)
	assert.Equal(t, 2*time.Second, cfg.QueryTimeout)
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		key, value, wantInErr string
	}{
		{"QUERY_TIMEOUT", "fast", "QUERY_TIMEOUT"},
		{"QUERY_CONCURRENCY", "many", "QUERY_CONCURRENCY"},
		{"DB_MAX_CONNS", "lots", "DB_MAX_CONNS"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATABASE_URL", "postgres://localhost/recruit")
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantInErr)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Defaults()
	valid.DatabaseURL = "postgres://localhost/recruit"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }},
		{"non numeric port", func(c *Config) { c.Port = "http" }},
		{"unknown timezone", func(c *Config) { c.TimeZone = "Mars/Olympus" }},
		{"host local timezone", func(c *Config) { c.TimeZone = "Local" }},
		{"zero concurrency", func(c *Config) { c.QueryConcurrency = 0 }},
		{"negative timeout", func(c *Config) { c.QueryTimeout = -time.Second }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
		})
	}
}

func TestLoad_RejectsLocalTimeZone(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/recruit")
	t.Setenv("TIMEZONE", "Local")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IANA name")
}

func TestLocation_MatchesTimeZoneName(t *testing.T) {
	cfg := Defaults()
	cfg.DatabaseURL = "postgres://localhost/recruit"
	cfg.TimeZone = "Africa/Casablanca"
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Africa/Casablanca", cfg.Location().String())
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{Port: "9000", TimeZone: "Europe/Paris"}

	merged := partial.MergeWithDefaults(Defaults())

	assert.Equal(t, "9000", merged.Port)
	assert.Equal(t, "Europe/Paris", merged.TimeZone)
	assert.Equal(t, DefaultQueryTimeout, merged.QueryTimeout)
	assert.Equal(t, DefaultLogFormat, merged.LogFormat)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Port: "9000"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, "9000", merged.Port)
	assert.Empty(t, merged.TimeZone)
}
