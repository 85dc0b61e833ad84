// Package middlewares provides the HTTP middleware mailforge installs in
// front of its handlers.
//
// # CORS
//
// CORS echoes allow-listed origins, sends a configurable fallback for all
// other callers and answers every OPTIONS request with 200 and an empty
// body, before routing happens:
//
//	middlewares.CORS(
//	    middlewares.WithAllowOrigins("https://app.example.com"),
//	    middlewares.WithFallback(middlewares.FallbackNone),
//	)
//
// # Request ID
//
// RequestID reuses X-Request-ID or X-Correlation-ID when the caller sends
// one and generates a UUID otherwise. Pair it with RequestIDExtractor to
// get request_id on every log record:
//
//	log := logger.New(cfg, middlewares.RequestIDExtractor())
//
// # Recover
//
// Recover converts panics into *PanicError, which the default error
// handler renders as a generic 500.
//
// # Access log
//
// AccessLog writes one record per request and feeds an HTTPObserver such
// as *metrics.Metrics.
//
// # Order
//
//	internal.WithMiddleware(
//	    middlewares.CORS(),
//	    middlewares.RequestID(),
//	    middlewares.AccessLog(m),
//	    middlewares.Recover(),
//	)
package middlewares
