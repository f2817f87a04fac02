// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// data from the handler, enforces the domain rules and calls repository
// methods to interact with the data.
package service

import (
	"github.com/deppfellow/joke-api/internal/lib/job"
	"github.com/deppfellow/joke-api/internal/repository"
	"github.com/deppfellow/joke-api/internal/server"
)

type Services struct {
	Jokes     *JokeService
	Telemetry *TelemetryService
	Job       *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Jokes:     NewJokeService(repos.Jokes),
		Telemetry: NewTelemetryService(s),
		Job:       s.Job,
	}, nil
}
