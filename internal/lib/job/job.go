// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) using asynq.Client
//   - a server runs workers that process those tasks (consumer) using asynq.Server
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/joke-api/internal/config"
	"github.com/deppfellow/joke-api/internal/metrics"
	"github.com/deppfellow/joke-api/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Queue names, by priority.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server  *asynq.Server
	logger  *zerolog.Logger
	metrics *metrics.Metrics
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the larger worker share; telemetry
// runs on "low".
func NewJobService(logger *zerolog.Logger, cfg *config.Config, m *metrics.Metrics) *JobService {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:  client,
		server:  server,
		logger:  logger,
		metrics: m,
	}
}

// Start registers task handlers and starts the workers in the background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTelemetryBeacon, j.handleTelemetryBeaconTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// EnqueueBeacon queues a beacon for the worker.
func (j *JobService) EnqueueBeacon(ctx context.Context, beacon model.Beacon) error {
	task, err := NewTelemetryBeaconTask(beacon)
	if err != nil {
		return fmt.Errorf("build telemetry task: %w", err)
	}

	if _, err := j.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue telemetry task: %w", err)
	}
	return nil
}

// Stop waits for running tasks, then closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
