package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/joke-api/internal/middleware"
	"github.com/deppfellow/joke-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns 200 when every configured check passes and 503 otherwise.
//
// With health checks disabled it only reports liveness. Redis is probed only
// when a client is connected.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	healthCfg := h.server.Config.Observability.HealthChecks
	timeout := healthCfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	isHealthy := true

	if healthCfg.Enabled && healthCfg.Has("database") {
		if !h.runCheck(c.Request().Context(), logger, checks, "database", timeout, h.server.DB.Ping) {
			isHealthy = false
		}
	}

	if h.server.Redis != nil && healthCfg.Enabled && healthCfg.Has("redis") {
		ping := func(ctx context.Context) error { return h.server.Redis.Ping(ctx).Err() }
		if !h.runCheck(c.Request().Context(), logger, checks, "redis", timeout, ping) {
			isHealthy = false
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) runCheck(
	parent context.Context,
	logger zerolog.Logger,
	checks map[string]interface{},
	name string,
	timeout time.Duration,
	ping func(context.Context) error,
) bool {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		checks[name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordHealthEvent(map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return false
	}

	checks[name] = map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
	return true
}

func (h *HealthHandler) recordHealthEvent(params map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", params)
	}
}
