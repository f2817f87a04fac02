// Package testutil builds fully wired servers backed by a temporary SQLite file.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/deppfellow/joke-api/internal/config"
	"github.com/deppfellow/joke-api/internal/database"
	"github.com/deppfellow/joke-api/internal/metrics"
	"github.com/deppfellow/joke-api/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Config returns the default config pointed at a fresh database under t.TempDir().
// Seeding is off; callers that want the sample jokes flip Database.Seed.
func Config(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "jokes.db")
	cfg.Database.Seed = false
	cfg.Observability.Environment = cfg.Primary.Env
	cfg.Observability.Logging.Level = "debug"
	return cfg
}

// NewServer opens the store for cfg (or Config(t) when nil) without redis,
// tracing or New Relic. The store is closed when the test ends.
func NewServer(t *testing.T, cfg *config.Config) *server.Server {
	t.Helper()

	if cfg == nil {
		cfg = Config(t)
	}

	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.WarnLevel)

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.DB.Close() })

	return &server.Server{
		Config:  cfg,
		Logger:  &logger,
		DB:      db,
		Metrics: metrics.New(),
	}
}
