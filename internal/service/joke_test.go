package service

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/joke-api/internal/errs"
	"github.com/deppfellow/joke-api/internal/model"
	"github.com/deppfellow/joke-api/internal/repository"
	"github.com/deppfellow/joke-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	err error
}

func (f failingStore) Insert(context.Context, string) (*model.Joke, error) {
	return nil, f.err
}

func (f failingStore) FetchRandom(context.Context) (*model.Joke, error) {
	return nil, f.err
}

func (f failingStore) FetchAll(context.Context) ([]model.Joke, error) {
	return nil, f.err
}

func newJokeService(t *testing.T, seed bool) *JokeService {
	t.Helper()

	cfg := testutil.Config(t)
	cfg.Database.Seed = seed
	repo := repository.NewJokeRepository(testutil.NewServer(t, cfg))
	require.NoError(t, repo.Initialize(context.Background()))

	return NewJokeService(repo)
}

func TestAddJokeRejectsBlankText(t *testing.T) {
	svc := newJokeService(t, false)

	for _, text := range []string{"", " ", "\t\n"} {
		_, err := svc.AddJoke(context.Background(), text)

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr, "text %q", text)
		assert.Equal(t, "text", validationErr.Field)
		assert.ErrorIs(t, err, errs.ErrValidation)
	}
}

func TestAddJokeStoresTextAsSubmitted(t *testing.T) {
	svc := newJokeService(t, true)

	joke, err := svc.AddJoke(context.Background(), "why?")
	require.NoError(t, err)
	assert.Equal(t, "why?", joke.Text)
	assert.Positive(t, joke.ID)

	jokes, err := svc.ListJokes(context.Background())
	require.NoError(t, err)
	assert.Contains(t, jokes, *joke)
}

func TestGetRandomJokeEmptyStore(t *testing.T) {
	_, err := newJokeService(t, false).GetRandomJoke(context.Background())

	var notFound *errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetRandomJokeReturnsExistingID(t *testing.T) {
	ctx := context.Background()
	svc := newJokeService(t, true)

	jokes, err := svc.ListJokes(ctx)
	require.NoError(t, err)

	ids := make(map[int64]bool, len(jokes))
	for _, joke := range jokes {
		ids[joke.ID] = true
	}

	for i := 0; i < 10; i++ {
		joke, err := svc.GetRandomJoke(ctx)
		require.NoError(t, err)
		assert.True(t, ids[joke.ID], "unexpected id %d", joke.ID)
	}
}

func TestListJokesIsStableWithoutWrites(t *testing.T) {
	ctx := context.Background()
	svc := newJokeService(t, true)

	first, err := svc.ListJokes(ctx)
	require.NoError(t, err)
	second, err := svc.ListJokes(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListJokesEmptyIsNotNil(t *testing.T) {
	jokes, err := newJokeService(t, false).ListJokes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, jokes)
	assert.Empty(t, jokes)
}

func TestStoreErrorsPropagate(t *testing.T) {
	storeErr := errs.NewStoreError("fetch all", errors.New("disk I/O error"))
	svc := NewJokeService(failingStore{err: storeErr})
	ctx := context.Background()

	_, err := svc.ListJokes(ctx)
	assert.ErrorIs(t, err, errs.ErrStore)

	_, err = svc.GetRandomJoke(ctx)
	assert.ErrorIs(t, err, errs.ErrStore)

	_, err = svc.AddJoke(ctx, "fine")
	assert.ErrorIs(t, err, errs.ErrStore)
}
