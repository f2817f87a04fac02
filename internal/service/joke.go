package service

import (
	"context"
	"strings"

	"github.com/deppfellow/joke-api/internal/errs"
	"github.com/deppfellow/joke-api/internal/model"
)

// JokeStore is the persistence the joke service needs.
type JokeStore interface {
	Insert(ctx context.Context, text string) (*model.Joke, error)
	FetchRandom(ctx context.Context) (*model.Joke, error)
	FetchAll(ctx context.Context) ([]model.Joke, error)
}

type JokeService struct {
	store JokeStore
}

func NewJokeService(store JokeStore) *JokeService {
	return &JokeService{store: store}
}

// GetRandomJoke returns one stored joke, or *errs.NotFoundError when there are none.
func (s *JokeService) GetRandomJoke(ctx context.Context) (*model.Joke, error) {
	joke, err := s.store.FetchRandom(ctx)
	if err != nil {
		return nil, err
	}
	if joke == nil {
		return nil, errs.NewNotFound("jokes")
	}
	return joke, nil
}

// ListJokes returns every joke ordered by id; empty, never nil, when the store is empty.
func (s *JokeService) ListJokes(ctx context.Context) ([]model.Joke, error) {
	jokes, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if jokes == nil {
		jokes = []model.Joke{}
	}
	return jokes, nil
}

// AddJoke stores text exactly as submitted. Text that is empty after
// trimming is rejected with *errs.ValidationError.
func (s *JokeService) AddJoke(ctx context.Context, text string) (*model.Joke, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errs.NewValidationError("text", "is required")
	}
	return s.store.Insert(ctx, text)
}
