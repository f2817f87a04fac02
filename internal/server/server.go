// Package server defines the Server container that composes the app's
// main dependencies and owns the HTTP server lifecycle.
//
// It owns:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the joke store handle
//   - the Prometheus registry
//   - the optional redis client and asynq job service
//   - the tracer provider shutdown hook
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/joke-api/internal/config"
	"github.com/deppfellow/joke-api/internal/database"
	"github.com/deppfellow/joke-api/internal/lib/job"
	"github.com/deppfellow/joke-api/internal/metrics"
	"github.com/deppfellow/joke-api/internal/tracing"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/joke-api/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. Redis and Job are nil when no redis
// address is configured.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Metrics       *metrics.Metrics
	Redis         *redis.Client
	Job           *job.JobService

	// TracerShutdown flushes the OpenTelemetry exporter. Nil means no-op.
	TracerShutdown tracing.ShutdownFunc

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// The store is opened and pinged; a failure aborts startup. Redis is
// optional: when configured but unreachable, startup logs and continues
// and beacons keep being processed inline.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Metrics:       metrics.New(),
	}

	if cfg.Redis.Enabled() {
		server.setupRedis()
	} else {
		logger.Info().Msg("redis address not set, telemetry beacons are processed inline")
	}

	return server, nil
}

func (s *Server) setupRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     s.Config.Redis.Address,
		Password: s.Config.Redis.Password,
		DB:       s.Config.Redis.DB,
	})

	if s.LoggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		s.Logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
		_ = redisClient.Close()
		return
	}

	jobService := job.NewJobService(s.Logger, s.Config, s.Metrics)
	if err := jobService.Start(); err != nil {
		s.Logger.Error().Err(err).Msg("Failed to start job server, continuing without Redis")
		jobService.Stop()
		_ = redisClient.Close()
		return
	}

	s.Redis = redisClient
	s.Job = jobService
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
//
// SetupHTTPServer must be called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server and releases dependencies in order: HTTP
// server, store, job worker, redis, tracer, New Relic.
//
// Every step runs even when an earlier one fails; the errors are joined.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if s.TracerShutdown != nil {
		if err := s.TracerShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown tracer: %w", err))
		}
	}

	s.LoggerService.Shutdown()

	return errors.Join(errs...)
}
