// Package handler is the first layer after the router.
//
// It parses requests, validates input through the validation package and
// calls the service layer, acting as the interface between HTTP and the
// business logic.
package handler

import (
	"github.com/deppfellow/joke-api/internal/server"
	"github.com/deppfellow/joke-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health    *HealthHandler
	Joke      *JokeHandler
	Telemetry *TelemetryHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		Joke:      NewJokeHandler(s, services.Jokes),
		Telemetry: NewTelemetryHandler(s, services.Telemetry),
	}
}
