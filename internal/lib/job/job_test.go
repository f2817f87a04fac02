package job

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/joke-api/internal/metrics"
	"github.com/deppfellow/joke-api/internal/model"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTelemetryBeaconTask(t *testing.T) {
	d := 120.0
	task, err := NewTelemetryBeaconTask(model.Beacon{Name: "fetch_joke", Duration: &d})
	require.NoError(t, err)

	assert.Equal(t, TaskTelemetryBeacon, task.Type())

	var decoded model.Beacon
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, "fetch_joke", decoded.Name)
	require.NotNil(t, decoded.Duration)
	assert.Equal(t, 120.0, *decoded.Duration)
}

func TestHandleTelemetryBeaconTask(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	m := metrics.New()
	j := &JobService{logger: &logger, metrics: m}

	d := 33.0
	task, err := NewTelemetryBeaconTask(model.Beacon{Name: "add_joke", Duration: &d, Page: "/"})
	require.NoError(t, err)

	require.NoError(t, j.handleTelemetryBeaconTask(context.Background(), task))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FrontendSpans.WithLabelValues("add_joke")))
	assert.Contains(t, buf.String(), "frontend span received")
}

func TestHandleTelemetryBeaconTaskSkipsRetryOnBadPayload(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger, metrics: metrics.New()}

	err := j.handleTelemetryBeaconTask(context.Background(),
		asynq.NewTask(TaskTelemetryBeacon, []byte("{not json"), asynq.Timeout(time.Second)))

	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestRecordBeaconWithoutMetrics(t *testing.T) {
	logger := zerolog.Nop()
	assert.NotPanics(t, func() {
		RecordBeacon(&logger, nil, model.Beacon{Name: "resource_timing"})
	})
}
