package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/deppfellow/joke-api/internal/config"
	"github.com/deppfellow/joke-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Port = "0"
	cfg.Database.Path = filepath.Join(t.TempDir(), "jokes.db")
	cfg.Observability.Environment = cfg.Primary.Env
	cfg.Observability.Logging.Level = "error"
	require.NoError(t, config.Validate(cfg))
	return cfg
}

func TestServeStopsOnCancelAndClosesStore(t *testing.T) {
	cfg := testConfig(t)

	srv, err := newApp(context.Background(), cfg)
	require.NoError(t, err)

	count, err := repository.NewJokeRepository(srv).CountAll(context.Background())
	require.NoError(t, err)
	assert.Positive(t, count)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, serveUntilDone(ctx, srv))
	assert.Error(t, srv.DB.Ping(context.Background()), "store must be closed after shutdown")
}

func TestRunServeReturnsNilOnCancel(t *testing.T) {
	t.Setenv("JOKES_SERVER.PORT", "0")
	t.Setenv("JOKES_DATABASE.PATH", filepath.Join(t.TempDir(), "jokes.db"))
	t.Setenv("JOKES_OBSERVABILITY.LOGGING.LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, runServe(ctx, &RootOptions{}))
}

func TestRunServeRejectsBadConfig(t *testing.T) {
	t.Setenv("JOKES_DATABASE.DRIVER", "mysql")

	assert.Error(t, runServe(context.Background(), &RootOptions{}))
}

func TestRootCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)
}
