package tracing

import (
	"context"
	"testing"

	"github.com/deppfellow/joke-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupNoopWhenDisabled(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Tracing.Enabled = false
	cfg.Tracing.Endpoint = "http://192.0.2.1:4318/v1/traces"

	shutdown, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Tracing.Enabled = true

	shutdown, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupNilConfig(t *testing.T) {
	shutdown, err := Setup(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupCreatesProvider(t *testing.T) {
	// Non-routable address; nothing is exported because no span is recorded.
	cfg := config.DefaultObservabilityConfig()
	cfg.Tracing.Enabled = true
	cfg.Tracing.Endpoint = "http://192.0.2.1:4318/v1/traces"

	shutdown, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestTracerIsUsable(t *testing.T) {
	_, span := Tracer().Start(context.Background(), "test")
	span.End()
}
