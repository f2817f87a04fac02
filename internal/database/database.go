// Package database opens the joke store.
//
// Both backends are exposed through a single *sql.DB:
//   - SQLite (modernc.org/sqlite, pure Go) stores everything in one file
//   - PostgreSQL goes through the pgx stdlib adapter, which keeps the pgx
//     tracer hooks (New Relic, query logging) working
package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/joke-api/internal/config"
	loggerConfig "github.com/deppfellow/joke-api/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// Database wraps the shared *sql.DB together with the driver it talks to.
type Database struct {
	DB     *sql.DB
	Driver string
	log    *zerolog.Logger
}

// multiTracer allows chaining multiple tracers.
//
// pgx supports a single Tracer in ConnConfig, so this adapter fans out to
// the New Relic tracer and the local tracelog.TraceLog.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is the number of seconds to wait for the startup ping.
const DatabasePingTimeout = 10

// New opens the configured store and pings it.
//
// loggerService may be nil; New Relic query instrumentation is only attached
// when it carries a running application.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err = openSQLite(cfg.Database.Path)
	case config.DriverPostgres:
		db, err = openPostgres(cfg, logger, loggerService)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	applyPoolSettings(db, cfg.Database)

	database := &Database{
		DB:     db,
		Driver: cfg.Database.Driver,
		log:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = database.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to the database")

	return database, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := config.EnsureDataDir(cleanPath); err != nil {
		return nil, err
	}

	dsn := "file:" + cleanPath +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return db, nil
}

func openPostgres(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}

	if loggerService.GetApplication() != nil {
		connConfig.Tracer = nrpgx5.NewTracer()
	}

	// Query logging is very noisy, so it is only on in the local env.
	if cfg.Primary.Env == config.EnvLocal {
		globalLevel := logger.GetLevel()
		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(globalLevel)),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		}

		if connConfig.Tracer != nil {
			connConfig.Tracer = &multiTracer{
				tracers: []any{connConfig.Tracer, localTracer},
			}
		} else {
			connConfig.Tracer = localTracer
		}
	}

	return stdlib.OpenDB(*connConfig), nil
}

func applyPoolSettings(db *sql.DB, cfg config.DatabaseConfig) {
	if cfg.Driver == config.DriverSQLite {
		// One writer at a time; concurrent inserts queue on the single connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		return
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
}

// Ping verifies the store is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Rebind rewrites "?" placeholders into the "$n" form PostgreSQL expects.
// Queries for SQLite are returned unchanged.
func (db *Database) Rebind(query string) string {
	if db.Driver != config.DriverPostgres {
		return query
	}

	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 4)
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close closes the underlying handle.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection")
	return db.DB.Close()
}
