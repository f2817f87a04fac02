package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/deppfellow/joke-api/internal/config"
	"github.com/deppfellow/joke-api/internal/handler"
	"github.com/deppfellow/joke-api/internal/logger"
	"github.com/deppfellow/joke-api/internal/repository"
	"github.com/deppfellow/joke-api/internal/router"
	"github.com/deppfellow/joke-api/internal/server"
	"github.com/deppfellow/joke-api/internal/service"
	"github.com/deppfellow/joke-api/internal/tracing"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "serve",
		Short:         "Start the HTTP server",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

// runServe boots every dependency, serves until ctx is cancelled and then
// shuts down within the configured grace period.
func runServe(ctx context.Context, opts *RootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	srv, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	return serveUntilDone(ctx, srv)
}

// newApp builds the server with its store initialized and the router
// attached. It does not listen yet.
func newApp(ctx context.Context, cfg *config.Config) (*server.Server, error) {
	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, err
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	tracerShutdown, err := tracing.Setup(ctx, cfg.Observability)
	if err != nil {
		// Tracing is best-effort.
		log.Warn().Err(err).Msg("tracing disabled")
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}
	srv.TracerShutdown = tracerShutdown

	repos := repository.NewRepositories(srv)
	if err := repos.Jokes.Initialize(ctx); err != nil {
		_ = srv.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize joke store: %w", err)
	}

	services, err := service.NewService(srv, repos)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return nil, fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	return srv, nil
}

// serveUntilDone starts srv and blocks until ctx is cancelled or the
// listener fails. Either way every dependency is released before it returns.
// A shutdown triggered by ctx returns nil.
func serveUntilDone(ctx context.Context, srv *server.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		srv.Logger.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			_ = srv.Shutdown(context.Background())
			return fmt.Errorf("failed to start server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.Config.Server.ShutdownGrace())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		srv.Logger.Error().Err(err).Msg("shutdown finished with errors")
	}

	srv.Logger.Info().Msg("server exited properly")
	return nil
}
