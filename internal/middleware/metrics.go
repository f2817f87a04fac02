package middleware

import (
	"strconv"
	"time"

	"github.com/deppfellow/joke-api/internal/server"
	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests that reached no route, keeping span names
// and metric labels bounded.
const unmatchedRoute = "unmatched"

// MetricsMiddleware feeds the HTTP series of the Prometheus registry.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Instrument records http_requests_total, http_request_duration_seconds and
// http_requests_in_flight for every request.
func (m *MetricsMiddleware) Instrument() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			registry := m.server.Metrics

			registry.HTTPInFlight.Inc()
			defer registry.HTTPInFlight.Dec()

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}

			status := c.Response().Status
			if err != nil {
				status = statusFromError(err)
			}

			method := c.Request().Method
			registry.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			registry.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())

			return err
		}
	}
}

// CountJokeRequest increments joke_requests_total{endpoint} before the
// handler runs, so every attempt is counted whatever the outcome.
func (m *MetricsMiddleware) CountJokeRequest(endpoint string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.server.Metrics.RecordJokeRequest(endpoint)
			return next(c)
		}
	}
}
