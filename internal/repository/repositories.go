// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch and persist data,
// abstracting SQL logic away from the service layer.
package repository

import (
	"github.com/deppfellow/joke-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Jokes *JokeRepository
}

// NewRepositories constructs the repository container on top of s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Jokes: NewJokeRepository(s),
	}
}
