package mailforge

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailforge/internal"
	"github.com/dmitrymomot/mailforge/pkg/health"
)

// Type aliases - public API
type (
	// App wires routing, middleware and error handling.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures probe endpoints.
	HealthOption = internal.HealthOption

	// HTTPError is an error rendered with its own status code.
	HTTPError = internal.HTTPError

	// ValidationErrors is a collection of validation errors.
	ValidationErrors = internal.ValidationErrors
)

// New creates an application with the given options.
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// DefaultErrorHandler renders errors as JSON.
func DefaultErrorHandler(c Context, err error) error {
	return internal.DefaultErrorHandler(c, err)
}

// App options

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithMiddleware adds global middleware, applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithErrorHandler replaces the default JSON error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
//
// Example:
//
//	mailforge.WithHealthChecks(
//	    mailforge.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// WithReadinessTimeout bounds all readiness checks together.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return internal.WithReadinessTimeout(d)
}

// WithMetricsHandler serves h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return internal.WithMetricsHandler(h)
}

// Run options

// Address sets the HTTP listen address.
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server lifecycle logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function run after the server stops.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context; cancelling it triggers shutdown.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// OnListen is called with the bound address once the listener is open.
func OnListen(fn func(net.Addr)) RunOption {
	return internal.OnListen(fn)
}

// Errors

// ErrBadRequest creates a 400 HTTPError.
func ErrBadRequest(message string) *HTTPError {
	return internal.ErrBadRequest(message)
}

// ErrInternal creates a 500 HTTPError.
func ErrInternal(message string) *HTTPError {
	return internal.ErrInternal(message)
}
