package router

import (
	"net/http"

	"github.com/deppfellow/joke-api/internal/handler"
	"github.com/deppfellow/joke-api/internal/metrics"
	"github.com/deppfellow/joke-api/internal/middleware"
	"github.com/deppfellow/joke-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// registerJokeRoutes registers the joke API. Each route counts itself in
// joke_requests_total before any other route middleware runs.
func registerJokeRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	jokes := r.Group("/jokes")

	jokes.GET("/random", handler.Handle(
		h.Joke.Handler,
		h.Joke.GetRandomJoke,
		http.StatusOK,
		&validation.EmptyRequest{},
	), m.Metrics.CountJokeRequest(metrics.EndpointRandom))

	jokes.GET("", handler.Handle(
		h.Joke.Handler,
		h.Joke.ListJokes,
		http.StatusOK,
		&validation.EmptyRequest{},
	), m.Metrics.CountJokeRequest(metrics.EndpointList))

	jokes.POST("", handler.Handle(
		h.Joke.Handler,
		h.Joke.AddJoke,
		http.StatusCreated,
		&validation.AddJokeRequest{},
	), m.Metrics.CountJokeRequest(metrics.EndpointCreate), m.Global.BodyLimit())
}
