package repository

import (
	"context"
	"time"

	"github.com/deppfellow/joke-api/internal/logger"
	"github.com/deppfellow/joke-api/internal/sqlerr"
	"github.com/deppfellow/joke-api/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// observe runs fn inside a client span, counts it in database_queries_total
// and logs it at warn level when it exceeds the slow query threshold.
// Failures carry the driver-neutral sqlerr code on the span and in the log.
func (r *JokeRepository) observe(ctx context.Context, operation, table string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.Tracer().Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", r.server.DB.Driver),
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", table),
		),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	if r.server.Metrics != nil {
		r.server.Metrics.RecordDatabaseQuery(operation, table, err == nil)
	}

	log := logger.FromContext(ctx, r.server.Logger)

	if err != nil {
		code := string(sqlerr.ErrCode(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("db.error_code", code))

		log.Debug().
			Err(err).
			Str("operation", operation).
			Str("table", table).
			Str("error_code", code).
			Msg("database query failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if threshold := r.slowQueryThreshold(); threshold > 0 && elapsed >= threshold {
		log.Warn().
			Str("operation", operation).
			Str("table", table).
			Dur("duration", elapsed).
			Msg("slow database query")
	}

	return err
}

func (r *JokeRepository) slowQueryThreshold() time.Duration {
	if r.server.Config == nil || r.server.Config.Observability == nil {
		return 0
	}
	return r.server.Config.Observability.Logging.SlowQueryThreshold
}
