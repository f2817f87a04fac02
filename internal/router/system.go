package router

import (
	"github.com/deppfellow/joke-api/internal/handler"
	"github.com/deppfellow/joke-api/internal/middleware"
	"github.com/deppfellow/joke-api/internal/server"
	"github.com/deppfellow/joke-api/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the joke API.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers, m *middleware.Middlewares) {
	r.GET("/health", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	r.POST("/telemetry", h.Telemetry.Collect, m.RateLimit.Telemetry())
}

// registerStaticRoutes serves the frontend at /. Files embedded in the binary
// are used unless server.static_dir points at a directory on disk.
func registerStaticRoutes(r *echo.Echo, s *server.Server) {
	if dir := s.Config.Server.StaticDir; dir != "" {
		r.Static("/", dir)
		return
	}
	r.StaticFS("/", static.FS)
}
