package internal

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailforge/pkg/health"
	"github.com/dmitrymomot/mailforge/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// Default probe and metrics paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
	defaultMetricsPath   = "/metrics"
)

// probeMethods are checked, in this order, when building an Allow header.
var probeMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// App wires routing, middleware and error handling.
// App is immutable after creation; all configuration goes through New.
type App struct {
	router                  chi.Router
	handler                 http.Handler
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	logger                  *slog.Logger
	health                  *healthConfig
	metrics                 http.Handler
	middlewares             []Middleware
	handlers                []Handler
}

// New creates an application with the given options.
//
// Example:
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.CORS(), middlewares.RequestID()),
//	    internal.WithHandlers(handlers.NewEmail(svc)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:       chi.NewRouter(),
		logger:       logger.NewNope(),
		errorHandler: DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.notFoundHandler == nil {
		a.notFoundHandler = func(Context) error { return ErrNotFound("Not found") }
	}
	if a.methodNotAllowedHandler == nil {
		a.methodNotAllowedHandler = a.defaultMethodNotAllowed
	}

	a.setupRoutes()
	return a
}

// Handler returns the root http.Handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	return runServer(runtimeConfig{
		handler:         a.handler,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
		onListen:        cfg.onListen,
	})
}

func (a *App) setupRoutes() {
	a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))

	if a.health != nil {
		a.router.Get(a.health.livenessPath, health.LivenessHandler())
		a.router.Get(a.health.readinessPath, health.ReadinessHandler(a.health.checks,
			health.WithLogger(a.logger),
			health.WithTimeout(a.health.timeout),
		))
	}
	if a.metrics != nil {
		a.router.Method(http.MethodGet, defaultMetricsPath, a.metrics)
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}

	// Global middleware wraps the router instead of being registered with
	// Use: chi skips its own stack when no route is registered.
	chain := make(chi.Middlewares, 0, len(a.middlewares))
	for _, mw := range a.middlewares {
		chain = append(chain, a.adaptMiddleware(mw))
	}
	a.handler = withRouteContext(a.router, chain.Handler(a.router))
}

// withRouteContext seeds chi's routing context before the global
// middleware runs, so they see the matched pattern once the router returns.
func withRouteContext(routes chi.Routes, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.RouteContext(r.Context()) == nil {
			rctx := chi.NewRouteContext()
			rctx.Routes = routes
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		}
		next.ServeHTTP(w, r)
	})
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError renders err unless a response was already written.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		a.logger.WarnContext(c, "error after response was written", slog.Any("error", err))
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		a.logger.ErrorContext(c, "error handler failed", slog.Any("error", herr))
	}
}

// allowedMethods lists the methods registered for path, plus OPTIONS.
func (a *App) allowedMethods(path string) []string {
	allowed := make([]string, 0, len(probeMethods)+1)
	for _, m := range probeMethods {
		if a.router.Match(chi.NewRouteContext(), m, path) {
			allowed = append(allowed, m)
		}
	}
	if !slices.Contains(allowed, http.MethodOptions) {
		allowed = append(allowed, http.MethodOptions)
	}
	return allowed
}

func (a *App) defaultMethodNotAllowed(c Context) error {
	c.SetHeader("Allow", strings.Join(a.allowedMethods(c.Request().URL.Path), ", "))
	return ErrMethodNotAllowed("Method not allowed")
}

// healthConfig holds probe endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
	timeout       time.Duration
}
