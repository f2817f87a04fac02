package repository

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/deppfellow/joke-api/internal/database"
	"github.com/deppfellow/joke-api/internal/errs"
	"github.com/deppfellow/joke-api/internal/testutil"
	"github.com/rs/zerolog"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, seed bool) *JokeRepository {
	t.Helper()

	cfg := testutil.Config(t)
	cfg.Database.Seed = seed

	repo := NewJokeRepository(testutil.NewServer(t, cfg))
	require.NoError(t, repo.Initialize(context.Background()))
	return repo
}

func TestInitializeSeedsOnce(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, true)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(database.SampleJokes)), count)

	require.NoError(t, repo.Initialize(ctx))

	count, err = repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(database.SampleJokes)), count)
}

func TestInitializeWithoutSeed(t *testing.T) {
	count, err := newRepo(t, false).CountAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeedSkipsNonEmptyTable(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, false)

	_, err := repo.Insert(ctx, "already here")
	require.NoError(t, err)

	inserted, err := repo.Seed(ctx, database.SampleJokes)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, false)

	first, err := repo.Insert(ctx, "first")
	require.NoError(t, err)
	second, err := repo.Insert(ctx, "  second  ")
	require.NoError(t, err)

	assert.Positive(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, "  second  ", second.Text)
}

func TestInsertRejectsBlankAtTheStore(t *testing.T) {
	_, err := newRepo(t, false).Insert(context.Background(), "   ")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStore)
}

func TestFailedQueryLogsErrorCode(t *testing.T) {
	repo := newRepo(t, false)

	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	repo.server.Logger = &log

	_, err := repo.Insert(context.Background(), "   ")
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"error_code":"check_violation"`)
	assert.Contains(t, buf.String(), `"operation":"INSERT"`)
}

func TestConcurrentInsertsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, false)

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			joke, err := repo.Insert(ctx, "concurrent")
			if assert.NoError(t, err) {
				ids <- joke.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestFetchRandom(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, false)

	joke, err := repo.FetchRandom(ctx)
	require.NoError(t, err)
	assert.Nil(t, joke)

	stored, err := repo.Insert(ctx, "only one")
	require.NoError(t, err)

	joke, err = repo.FetchRandom(ctx)
	require.NoError(t, err)
	require.NotNil(t, joke)
	assert.Equal(t, *stored, *joke)
}

func TestFetchAllOrderedAndNeverNil(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, false)

	jokes, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, jokes)
	assert.Empty(t, jokes)

	for _, text := range []string{"a", "b", "c"} {
		_, err := repo.Insert(ctx, text)
		require.NoError(t, err)
	}

	jokes, err = repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, jokes, 3)
	for i := 1; i < len(jokes); i++ {
		assert.Less(t, jokes[i-1].ID, jokes[i].ID)
	}
	assert.Equal(t, "a", jokes[0].Text)
}

func TestQueriesAreCounted(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, false)

	_, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, "counted")
	require.NoError(t, err)

	m := repo.server.Metrics
	assert.Equal(t, 1.0, promtest.ToFloat64(m.DatabaseQueries.WithLabelValues("SELECT", "jokes", "true")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.DatabaseQueries.WithLabelValues("INSERT", "jokes", "true")))
}

func TestClosedStoreReturnsStoreError(t *testing.T) {
	repo := newRepo(t, false)
	require.NoError(t, repo.server.DB.DB.Close())

	_, err := repo.FetchAll(context.Background())
	var storeErr *errs.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "fetch all", storeErr.Op)
}
