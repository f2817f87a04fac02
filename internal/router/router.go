// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps paths to their handlers.
package router

import (
	"github.com/deppfellow/joke-api/internal/handler"
	"github.com/deppfellow/joke-api/internal/middleware"
	"github.com/deppfellow/joke-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the global middleware chain and all routes.
//
// Middleware order matters: the request id comes first so every later layer
// can log it, the tracing middleware must run before the context enhancer
// reads trace ids, and Recover sits inside the logger and metrics so a
// panic is still logged and counted as a 500. The body limit is a route
// middleware on POST /jokes, after the joke counter.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.OTelMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Instrument(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
	)

	registerSystemRoutes(router, s, h, middlewares)
	registerJokeRoutes(router, h, middlewares)
	registerStaticRoutes(router, s)

	return router
}
