// Package logger builds log/slog loggers with context extraction and
// optional Sentry fan-out.
//
// # Basic Usage
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(logger.Config{Level: "info", Format: "json"}, requestID)
//	log.InfoContext(ctx, "email sent", slog.String("id", id))
//
// Format "text" switches to a colourised console handler for local runs.
//
// # Sentry
//
// NewWithSentry adds a Sentry handler next to the base handler when a DSN is
// configured. Errors become Sentry issues; warnings and errors are stored as
// logs. Register FlushSentry as a shutdown hook so buffered events are sent.
//
// # Testing
//
// NewNope returns a logger that discards everything.
package logger
