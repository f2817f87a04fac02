package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/joke-api/internal/database"
	"github.com/deppfellow/joke-api/internal/errs"
	"github.com/deppfellow/joke-api/internal/model"
	"github.com/deppfellow/joke-api/internal/server"
)

const jokesTable = "jokes"

// JokeRepository persists jokes in the configured store.
type JokeRepository struct {
	server *server.Server
}

func NewJokeRepository(s *server.Server) *JokeRepository {
	return &JokeRepository{server: s}
}

// Initialize migrates the schema and, when seeding is enabled, inserts the
// sample jokes into an empty table. Running it again never duplicates rows.
func (r *JokeRepository) Initialize(ctx context.Context) error {
	if err := r.server.DB.Migrate(ctx); err != nil {
		return errs.NewStoreError("migrate", err)
	}

	if !r.server.Config.Database.Seed {
		return nil
	}

	inserted, err := r.Seed(ctx, database.SampleJokes)
	if err != nil {
		return err
	}
	if inserted > 0 {
		r.server.Logger.Info().Int("count", inserted).Msg("seeded sample jokes")
	}
	return nil
}

// Seed inserts jokes in one transaction when the table is empty and reports
// how many rows it wrote.
//
// The emptiness check and the inserts share the transaction, but two
// processes booting against the same empty PostgreSQL database can still
// both seed.
func (r *JokeRepository) Seed(ctx context.Context, jokes []string) (int, error) {
	inserted := 0

	err := r.observe(ctx, "SEED", jokesTable, func(ctx context.Context) error {
		tx, err := r.server.DB.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin seed transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		var count int64
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM jokes").Scan(&count); err != nil {
			return fmt.Errorf("count jokes: %w", err)
		}
		if count > 0 {
			return nil
		}

		stmt, err := tx.PrepareContext(ctx, r.server.DB.Rebind("INSERT INTO jokes (text) VALUES (?)"))
		if err != nil {
			return fmt.Errorf("prepare seed insert: %w", err)
		}
		defer stmt.Close()

		for _, text := range jokes {
			if _, err := stmt.ExecContext(ctx, text); err != nil {
				return fmt.Errorf("insert sample joke: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit seed transaction: %w", err)
		}
		inserted = len(jokes)
		return nil
	})
	if err != nil {
		return 0, errs.NewStoreError("seed", err)
	}

	return inserted, nil
}

// CountAll returns the number of stored jokes.
func (r *JokeRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.observe(ctx, "COUNT", jokesTable, func(ctx context.Context) error {
		return r.server.DB.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM jokes").Scan(&count)
	})
	if err != nil {
		return 0, errs.NewStoreError("count", err)
	}
	return count, nil
}

// Insert stores text and returns the joke with its assigned id.
func (r *JokeRepository) Insert(ctx context.Context, text string) (*model.Joke, error) {
	joke := &model.Joke{Text: text}

	err := r.observe(ctx, "INSERT", jokesTable, func(ctx context.Context) error {
		return r.server.DB.DB.QueryRowContext(ctx,
			r.server.DB.Rebind("INSERT INTO jokes (text) VALUES (?) RETURNING id"),
			text,
		).Scan(&joke.ID)
	})
	if err != nil {
		return nil, errs.NewStoreError("insert", err)
	}

	return joke, nil
}

// FetchRandom returns one uniformly chosen joke, or nil when the table is empty.
func (r *JokeRepository) FetchRandom(ctx context.Context) (*model.Joke, error) {
	var joke model.Joke
	found := true

	err := r.observe(ctx, "SELECT", jokesTable, func(ctx context.Context) error {
		err := r.server.DB.DB.QueryRowContext(ctx,
			"SELECT id, text FROM jokes ORDER BY RANDOM() LIMIT 1",
		).Scan(&joke.ID, &joke.Text)
		if errors.Is(err, sql.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return nil, errs.NewStoreError("fetch random", err)
	}
	if !found {
		return nil, nil
	}

	return &joke, nil
}

// FetchAll returns every joke ordered by id. The slice is never nil.
func (r *JokeRepository) FetchAll(ctx context.Context) ([]model.Joke, error) {
	jokes := make([]model.Joke, 0)

	err := r.observe(ctx, "SELECT", jokesTable, func(ctx context.Context) error {
		rows, err := r.server.DB.DB.QueryContext(ctx, "SELECT id, text FROM jokes ORDER BY id")
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var joke model.Joke
			if err := rows.Scan(&joke.ID, &joke.Text); err != nil {
				return err
			}
			jokes = append(jokes, joke)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errs.NewStoreError("fetch all", err)
	}

	return jokes, nil
}
