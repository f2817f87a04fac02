package handler

import (
	"github.com/deppfellow/joke-api/internal/metrics"
	"github.com/deppfellow/joke-api/internal/model"
	"github.com/deppfellow/joke-api/internal/server"
	"github.com/deppfellow/joke-api/internal/service"
	"github.com/deppfellow/joke-api/internal/validation"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type JokeHandler struct {
	Handler
	jokeService *service.JokeService
}

func NewJokeHandler(s *server.Server, jokeService *service.JokeService) *JokeHandler {
	return &JokeHandler{
		Handler:     NewHandler(s),
		jokeService: jokeService,
	}
}

// GetRandomJoke serves GET /jokes/random.
func (h *JokeHandler) GetRandomJoke(c echo.Context, _ *validation.EmptyRequest) (*model.Joke, error) {
	joke, err := h.jokeService.GetRandomJoke(c.Request().Context())
	if err != nil {
		return nil, err
	}

	trace.SpanFromContext(c.Request().Context()).SetAttributes(attribute.Int64("joke.id", joke.ID))
	h.server.Metrics.RecordJokesServed(metrics.EndpointRandom, 1)

	return joke, nil
}

// ListJokes serves GET /jokes.
func (h *JokeHandler) ListJokes(c echo.Context, _ *validation.EmptyRequest) ([]model.Joke, error) {
	jokes, err := h.jokeService.ListJokes(c.Request().Context())
	if err != nil {
		return nil, err
	}

	trace.SpanFromContext(c.Request().Context()).SetAttributes(attribute.Int("jokes.count", len(jokes)))
	h.server.Metrics.RecordJokesServed(metrics.EndpointList, len(jokes))

	return jokes, nil
}

// AddJoke serves POST /jokes.
func (h *JokeHandler) AddJoke(c echo.Context, req *validation.AddJokeRequest) (*model.Joke, error) {
	span := trace.SpanFromContext(c.Request().Context())
	span.SetAttributes(attribute.Int("joke.text.length", len(req.Text)))

	joke, err := h.jokeService.AddJoke(c.Request().Context(), req.Text)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("joke.id", joke.ID))
	h.server.Metrics.RecordJokesServed(metrics.EndpointCreate, 1)

	return joke, nil
}
