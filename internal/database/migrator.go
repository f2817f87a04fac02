package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/deppfellow/joke-api/internal/config"
	"github.com/jackc/pgx/v5/stdlib"
	tern "github.com/jackc/tern/v2/migrate"
)

// Both migration trees ship inside the binary.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

const sqliteMigrationTable = "schema_migrations"

// Migrate brings the schema up to date. It is safe to call on every start.
func (db *Database) Migrate(ctx context.Context) error {
	switch db.Driver {
	case config.DriverSQLite:
		return db.migrateSQLite(ctx)
	case config.DriverPostgres:
		return db.migratePostgres(ctx)
	default:
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}

// migratePostgres runs the tern migrations on a connection borrowed from the pool.
func (db *Database) migratePostgres(ctx context.Context) error {
	conn, err := db.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire migration connection: %w", err)
	}
	defer conn.Close()

	return conn.Raw(func(driverConn any) error {
		stdConn, ok := driverConn.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", driverConn)
		}

		m, err := tern.NewMigrator(ctx, stdConn.Conn(), "schema_version")
		if err != nil {
			return fmt.Errorf("constructing database migrator: %w", err)
		}

		subtree, err := fs.Sub(migrations, "migrations/postgres")
		if err != nil {
			return fmt.Errorf("retrieving database migrations subtree: %w", err)
		}

		if err := m.LoadMigrations(subtree); err != nil {
			return fmt.Errorf("loading database migrations: %w", err)
		}

		from, err := m.GetCurrentVersion(ctx)
		if err != nil {
			return fmt.Errorf("retrieving current database migration version: %w", err)
		}

		if err := m.Migrate(ctx); err != nil {
			return err
		}

		if from == int32(len(m.Migrations)) {
			db.log.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
		} else {
			db.log.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
		}
		return nil
	})
}

// migrateSQLite applies each embedded file at most once, recording it in
// schema_migrations inside the same transaction.
func (db *Database) migrateSQLite(ctx context.Context) error {
	const root = "migrations/sqlite"

	entries, err := fs.ReadDir(migrations, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`, sqliteMigrationTable)
	if _, err := db.DB.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	applied := 0
	for _, file := range sqlFiles {
		done, err := db.isApplied(ctx, file)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrations, root+"/"+file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		upSQL := extractUpMigration(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := db.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration transaction %s: %w", file, err)
		}

		if _, err := tx.ExecContext(ctx, upSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO "+sqliteMigrationTable+" (name, applied_at) VALUES (?, ?)",
			file,
			time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
		applied++
	}

	if applied == 0 {
		db.log.Info().Msgf("database schema up to date, version %d", len(sqlFiles))
	} else {
		db.log.Info().Msgf("migrated database schema, applied %d of %d", applied, len(sqlFiles))
	}
	return nil
}

// extractUpMigration returns the SQL in the "-- +migrate Up" section, or the
// whole file when it has no markers.
func extractUpMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"

	upIdx := strings.Index(content, up)
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, down)
	if downIdx == -1 {
		return content[upIdx+len(up):]
	}
	return content[upIdx+len(up) : downIdx]
}

func (db *Database) isApplied(ctx context.Context, name string) (bool, error) {
	var found int
	err := db.DB.QueryRowContext(ctx, "SELECT 1 FROM "+sqliteMigrationTable+" WHERE name = ?", name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
