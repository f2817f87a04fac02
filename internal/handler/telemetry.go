package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/deppfellow/joke-api/internal/middleware"
	"github.com/deppfellow/joke-api/internal/model"
	"github.com/deppfellow/joke-api/internal/server"
	"github.com/deppfellow/joke-api/internal/service"
	"github.com/labstack/echo/v4"
)

// maxBeaconBytes bounds the body read from a telemetry beacon.
const maxBeaconBytes = 64 << 10

// TelemetryHandler receives browser beacons.
//
// It does not go through Handle: navigator.sendBeacon posts text/plain,
// which echo's binder rejects, and a bad beacon must never turn into an
// error response.
type TelemetryHandler struct {
	Handler
	telemetryService *service.TelemetryService
}

func NewTelemetryHandler(s *server.Server, telemetryService *service.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{
		Handler:          NewHandler(s),
		telemetryService: telemetryService,
	}
}

// Collect serves POST /telemetry. It always answers 202 with no body.
func (h *TelemetryHandler) Collect(c echo.Context) error {
	logger := middleware.GetLogger(c)

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBeaconBytes+1))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read telemetry beacon")
		return c.NoContent(http.StatusAccepted)
	}
	if len(body) > maxBeaconBytes {
		logger.Warn().Int("limit", maxBeaconBytes).Msg("telemetry beacon too large, dropped")
		return c.NoContent(http.StatusAccepted)
	}

	var beacon model.Beacon
	if err := json.Unmarshal(body, &beacon); err != nil {
		logger.Warn().Err(err).Msg("malformed telemetry beacon, dropped")
		return c.NoContent(http.StatusAccepted)
	}

	h.telemetryService.Ingest(c.Request().Context(), beacon)

	return c.NoContent(http.StatusAccepted)
}
