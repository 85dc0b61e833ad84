package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailforge"
	"github.com/dmitrymomot/mailforge/internal/config"
	"github.com/dmitrymomot/mailforge/internal/handlers"
	"github.com/dmitrymomot/mailforge/middlewares"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/metrics"
	"github.com/dmitrymomot/mailforge/pkg/redis"
)

const sentryFlushTimeout = 2 * time.Second

func newServeCommand(cfg func() *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := cfg()
			if addr != "" {
				c.Server.Addr = addr
			}
			return serve(cmd.Context(), c)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides server.addr)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := newLogger(cfg)
	m := metrics.New("mailforge")

	d, err := buildDeps(ctx, cfg, log, m)
	if err != nil {
		log.Error("startup failed", "error", err)
		return err
	}

	healthOpts := []mailforge.HealthOption{mailforge.WithReadinessTimeout(3 * time.Second)}
	if d.redis != nil {
		healthOpts = append(healthOpts, mailforge.WithReadinessCheck("redis", redis.Healthcheck(d.redis)))
	}

	app := mailforge.New(
		mailforge.WithLogger(log),
		mailforge.WithMiddleware(
			middlewares.Recover(),
			middlewares.CORS(
				middlewares.WithAllowOrigins(cfg.CORS.AllowedOrigins...),
				middlewares.WithFallback(cfg.CORS.Fallback),
				middlewares.WithExposeHeaders("X-Request-ID"),
				middlewares.WithOnFallback(func(string) { m.CORSFallback() }),
			),
			middlewares.RequestID(),
			middlewares.AccessLog(m),
		),
		mailforge.WithErrorHandler(handlers.ErrorHandler),
		mailforge.WithHandlers(handlers.NewEmail(d.service)),
		mailforge.WithHealthChecks(healthOpts...),
		mailforge.WithMetricsHandler(m.Handler()),
	)

	return app.Run(
		mailforge.Address(cfg.Server.Addr),
		mailforge.WithContext(ctx),
		mailforge.ShutdownTimeout(cfg.Server.ShutdownTimeout),
		mailforge.ShutdownHook(d.close),
		mailforge.ShutdownHook(logger.FlushSentry(sentryFlushTimeout)),
	)
}
