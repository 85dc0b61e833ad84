package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailforge/internal"
)

// HTTPObserver records finished requests, e.g. *metrics.Metrics.
type HTTPObserver interface {
	HTTP(method, route string, status int, d time.Duration)
}

// AccessLog logs one line per request after the handler returns and
// reports it to obs when obs is non-nil. Server errors (5xx) are logged
// at warn level. Handler errors are rendered by the app before a global
// middleware unwinds, so the written status is what gets logged.
func AccessLog(obs HTTPObserver) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			rw := c.ResponseWriter()
			route := c.RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("route", route),
				slog.Int("status", rw.Status()),
				slog.Int64("bytes", rw.Size()),
				slog.Duration("duration", elapsed),
			}
			if rw.Status() >= http.StatusInternalServerError {
				c.LogWarn("request failed", attrs...)
			} else {
				c.LogInfo("request", attrs...)
			}

			if obs != nil {
				obs.HTTP(c.Request().Method, route, rw.Status(), elapsed)
			}
			return err
		}
	}
}
