package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailforge/pkg/health"
)

// Option configures the application.
type Option func(*App)

// WithLogger sets the request logger. A nil logger keeps the no-op default.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMiddleware adds global middleware, applied in the order provided.
// Global middleware also runs for unmatched routes and methods.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
//
// Example:
//
//	internal.WithErrorHandler(func(c internal.Context, err error) error {
//	    if errors.Is(err, welcome.ErrRender) {
//	        err = internal.ErrInternal("Failed to render email", internal.WithError(err))
//	    }
//	    return internal.DefaultErrorHandler(c, err)
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
// The default sets an Allow header listing the route's methods and OPTIONS.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// HealthOption configures probe endpoints.
type HealthOption func(*healthConfig)

// WithHealthChecks registers GET /health/live and GET /health/ready.
//
// Example:
//
//	internal.WithHealthChecks(
//	    internal.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			timeout:       5 * time.Second,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.health = cfg
	}
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if fn == nil {
			return
		}
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}

// WithReadinessTimeout bounds all readiness checks together.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMetricsHandler serves h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(a *App) {
		a.metrics = h
	}
}
