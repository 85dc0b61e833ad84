package middlewares

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/mailforge/internal"
)

// FallbackNone disables the Access-Control-Allow-Origin header for origins
// outside the allow-list.
const FallbackNone = "none"

// DefaultAllowOrigins are the front-ends allowed to call the API.
var DefaultAllowOrigins = []string{
	"http://localhost:3002",
	"http://rubujakcyp.online:3002",
	"https://nfc-custom-domain.vercel.app",
	"https://rubujakcyp.online",
}

// DefaultCORSConfig provides the defaults used by CORS.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins: DefaultAllowOrigins,
	Fallback:     "*",
	AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowHeaders: []string{"Content-Type"},
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// OnFallback is called whenever an origin outside the allow-list
	// receives the fallback value.
	OnFallback func(origin string)

	// Fallback is sent as Access-Control-Allow-Origin when the request
	// origin is not in AllowOrigins or is missing. FallbackNone or ""
	// omits the header.
	Fallback string

	// AllowOrigins are echoed back verbatim.
	AllowOrigins []string

	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins replaces the allow-list. An empty list keeps the defaults.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		if len(origins) > 0 {
			cfg.AllowOrigins = origins
		}
	}
}

// WithFallback sets the value sent for unlisted origins: "*", a fixed
// origin, or FallbackNone.
func WithFallback(fallback string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.Fallback = fallback
	}
}

// WithAllowMethods sets the allowed HTTP methods.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders sets the allowed request headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithExposeHeaders sets the headers exposed to the browser.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.ExposeHeaders = headers
	}
}

// WithOnFallback registers a hook for requests served with the fallback
// origin, e.g. a metrics counter.
func WithOnFallback(fn func(origin string)) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.OnFallback = fn
	}
}

// CORS returns middleware that sets cross-origin headers on every response
// and answers OPTIONS with 200 and an empty body.
// Register it first so preflight requests never reach routing.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := DefaultCORSConfig
	cfg.AllowOrigins = slices.Clone(DefaultCORSConfig.AllowOrigins)
	for _, opt := range opts {
		opt(&cfg)
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")
	fallback := cfg.Fallback
	if fallback == FallbackNone {
		fallback = ""
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			headers := c.Response().Header()

			switch {
			case origin != "" && slices.Contains(cfg.AllowOrigins, origin):
				headers.Set("Access-Control-Allow-Origin", origin)
			case fallback != "":
				headers.Set("Access-Control-Allow-Origin", fallback)
				if cfg.OnFallback != nil {
					cfg.OnFallback(origin)
				}
			}

			headers.Add("Vary", "Origin")
			headers.Set("Access-Control-Allow-Methods", allowMethods)
			headers.Set("Access-Control-Allow-Headers", allowHeaders)
			if exposeHeaders != "" {
				headers.Set("Access-Control-Expose-Headers", exposeHeaders)
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
