package middleware

import (
	"github.com/deppfellow/joke-api/internal/server"
)

// Middlewares groups every middleware component used by the HTTP server, so
// router setup receives one value instead of many.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Metrics         *MetricsMiddleware
	RateLimit       *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components from the application container.
//
// When New Relic is not configured the tracing middleware degrades into a
// pass-through for the APM part.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		Metrics:         NewMetricsMiddleware(s),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
