package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/joke-api/internal/testutil"
	"github.com/labstack/echo/v4"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func notFound(echo.Context) error {
	return echo.ErrNotFound
}

func TestOTelMiddlewareNamesUnmatchedRoutes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	tm := NewTracingMiddleware(testutil.NewServer(t, nil), nil)

	for _, target := range []string{"/a/1", "/b/2"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := echo.New().NewContext(req, httptest.NewRecorder())

		err := tm.OTelMiddleware()(notFound)(c)
		assert.ErrorIs(t, err, echo.ErrNotFound)
	}

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, "GET unmatched", span.Name())
	}
}

func TestInstrumentLabelsUnmatchedRoutes(t *testing.T) {
	s := testutil.NewServer(t, nil)
	m := NewMetricsMiddleware(s)

	req := httptest.NewRequest(http.MethodGet, "/whatever/42", nil)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	_ = m.Instrument()(notFound)(c)

	assert.Equal(t, 1.0, promtest.ToFloat64(s.Metrics.HTTPRequests.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
}
