package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/mailforge/internal/config"
	"github.com/dmitrymomot/mailforge/internal/welcome"
	"github.com/dmitrymomot/mailforge/middlewares"
	"github.com/dmitrymomot/mailforge/pkg/cache"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/mailer"
	"github.com/dmitrymomot/mailforge/pkg/mailer/resend"
	"github.com/dmitrymomot/mailforge/pkg/metrics"
	"github.com/dmitrymomot/mailforge/pkg/redis"
	"github.com/dmitrymomot/mailforge/pkg/template"
)

// deps holds everything built from the config. close releases what needs it.
type deps struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	redis   goredis.UniversalClient
	service *welcome.Service
	closers []func(context.Context) error
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.NewWithSentry(cfg.Log, cfg.Sentry, middlewares.RequestIDExtractor())
}

func newAssembler(cfg *config.Config) *template.Assembler {
	return template.New(template.WithButton(cfg.Template.ButtonURL, cfg.Template.ButtonLabel))
}

func buildDeps(ctx context.Context, cfg *config.Config, log *slog.Logger, m *metrics.Metrics) (*deps, error) {
	d := &deps{log: log, metrics: m}

	sender := resend.New(cfg.Resend)
	opts := []welcome.Option{welcome.WithLogger(log), welcome.WithMetrics(m)}

	if cfg.Cache.Enabled {
		c, err := d.newPreviewCache(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, welcome.WithCache(c, cfg.Cache.TTL))
	}

	d.service = welcome.NewService(newAssembler(cfg), mailer.New(sender, cfg.Mailer), opts...)
	return d, nil
}

func (d *deps) newPreviewCache(ctx context.Context, cfg *config.Config) (cache.Cache[template.Rendered], error) {
	if cfg.Cache.RedisURL == "" {
		c := cache.NewMemory[template.Rendered](cfg.Cache.TTL, 2*cfg.Cache.TTL)
		d.closers = append(d.closers, func(context.Context) error { return c.Close() })
		return c, nil
	}

	client, err := redis.Open(ctx, cfg.Cache.RedisURL, redis.WithLogger(d.log))
	if err != nil {
		return nil, fmt.Errorf("preview cache: %w", err)
	}
	d.redis = client
	d.closers = append(d.closers, redis.Shutdown(client))
	return cache.NewRedis[template.Rendered](client, nil,
		cache.WithPrefix("mailforge"),
		cache.WithRedisDefaultTTL(cfg.Cache.TTL),
	), nil
}

func (d *deps) close(ctx context.Context) error {
	var errs []error
	for _, fn := range d.closers {
		errs = append(errs, fn(ctx))
	}
	return errors.Join(errs...)
}
