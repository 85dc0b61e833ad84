package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	// MinLevel determines which log levels are stored in Sentry (warn or error).
	MinLevel slog.Level `yaml:"-"`
}

// NewWithSentry creates a logger that writes to the base handler and Sentry.
// If DSN is empty, only the base handler is used.
// Context extractors are applied to logs sent to both destinations.
func NewWithSentry(cfg Config, sc SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	base := newBaseHandler(cfg)

	if sc.DSN == "" {
		return slog.New(withContext(base, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sc.DSN,
		Environment: sc.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(withContext(base, extractors...))
	}

	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if sc.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel, // errors become issues
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(withContext(fanout{base, sentryHandler}, extractors...))
}

// FlushSentry waits for buffered Sentry events. Safe to call when Sentry
// was never initialised.
func FlushSentry(timeout time.Duration) func(context.Context) error {
	return func(context.Context) error {
		sentry.Flush(timeout)
		return nil
	}
}
