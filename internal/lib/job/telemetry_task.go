package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/joke-api/internal/metrics"
	"github.com/deppfellow/joke-api/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// TaskTelemetryBeacon is the job type name stored in Redis.
const TaskTelemetryBeacon = "telemetry:beacon"

// NewTelemetryBeaconTask wraps a beacon in an Asynq task.
//
// Beacons are best effort: one retry, low queue, short timeout.
func NewTelemetryBeaconTask(beacon model.Beacon) (*asynq.Task, error) {
	payload, err := json.Marshal(beacon)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskTelemetryBeacon,
		payload,
		asynq.MaxRetry(1),
		asynq.Queue(QueueLow),
		asynq.Timeout(10*time.Second),
	), nil
}

// RecordBeacon logs a beacon and records it in the frontend metrics.
// A nil m only logs.
func RecordBeacon(logger *zerolog.Logger, m *metrics.Metrics, beacon model.Beacon) {
	name := beacon.MetricName()
	duration := beacon.DurationMs()

	if m != nil {
		m.RecordFrontendSpan(name, duration)
	}

	event := logger.Debug().
		Str("span", name).
		Int("events", len(beacon.Events)).
		Str("page", beacon.Page).
		Str("user_agent", beacon.UserAgent)
	if duration >= 0 {
		event = event.Float64("duration_ms", duration)
	}
	event.Msg("frontend span received")
}

func (j *JobService) handleTelemetryBeaconTask(ctx context.Context, t *asynq.Task) error {
	var beacon model.Beacon
	if err := json.Unmarshal(t.Payload(), &beacon); err != nil {
		// Retrying a payload that cannot be decoded never helps.
		return fmt.Errorf("failed to unmarshal telemetry beacon payload: %v: %w", err, asynq.SkipRetry)
	}

	RecordBeacon(j.logger, j.metrics, beacon)
	return nil
}
