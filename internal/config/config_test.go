package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultSQLitePath, cfg.Database.Path)
	assert.True(t, cfg.Database.Seed)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Observability.Tracing.Active())
	assert.Equal(t, DefaultServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, EnvDevelopment, cfg.Observability.Environment)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownGrace())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("JOKES_SERVER.PORT", "8080")
	t.Setenv("JOKES_DATABASE.SEED", "false")
	t.Setenv("JOKES_OBSERVABILITY.LOGGING.LEVEL", "warn")
	t.Setenv("JOKES_REDIS.ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	// Untouched siblings keep their defaults.
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoadConfigProductionSQLitePath(t *testing.T) {
	t.Setenv("JOKES_PRIMARY.ENV", EnvProduction)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProductionSQLitePath, cfg.Database.Path)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
database:
  path: /tmp/from-file.db
observability:
  logging:
    format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("JOKES_SERVER.PORT", "7070")

	cfg, err := LoadConfig(WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "/tmp/from-file.db", cfg.Database.Path)
	assert.Equal(t, "console", cfg.Observability.Logging.Format)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "postgres without dsn", mutate: func(c *Config) { c.Database.Driver = DriverPostgres }},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "non numeric port", mutate: func(c *Config) { c.Server.Port = "http" }},
		{name: "bad log level", mutate: func(c *Config) { c.Observability.Logging.Level = "loud" }},
		{name: "tracing without endpoint", mutate: func(c *Config) { c.Observability.Tracing.Enabled = true }},
		{name: "sample ratio above one", mutate: func(c *Config) { c.Observability.Tracing.SampleRatio = 2 }},
		{name: "unknown health check", mutate: func(c *Config) { c.Observability.HealthChecks.Checks = []string{"kafka"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.Path = DefaultSQLitePath
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		cfg := Default()
		cfg.Database.Path = DefaultSQLitePath
		assert.NoError(t, Validate(cfg))
	})
}

func TestEnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	require.NoError(t, EnsureDataDir(filepath.Join(dir, "jokes.db")))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, EnsureDataDir("jokes.db"))
}

func TestHealthChecksHas(t *testing.T) {
	h := HealthChecksConfig{Checks: []string{"database"}}
	assert.True(t, h.Has("database"))
	assert.False(t, h.Has("redis"))
}
