package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailforge/internal"
	"github.com/dmitrymomot/mailforge/middlewares"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		origin     string
		opts       []middlewares.CORSOption
		wantOrigin string
	}{
		{name: "listed origin echoed", origin: "http://localhost:3002", wantOrigin: "http://localhost:3002"},
		{name: "listed production origin", origin: "https://rubujakcyp.online", wantOrigin: "https://rubujakcyp.online"},
		{name: "unlisted origin gets wildcard", origin: "https://evil.example", wantOrigin: "*"},
		{name: "missing origin gets wildcard", origin: "", wantOrigin: "*"},
		{
			name:       "fallback none omits header",
			origin:     "https://evil.example",
			opts:       []middlewares.CORSOption{middlewares.WithFallback(middlewares.FallbackNone)},
			wantOrigin: "",
		},
		{
			name:       "custom allow-list replaces defaults",
			origin:     "http://localhost:3002",
			opts:       []middlewares.CORSOption{middlewares.WithAllowOrigins("https://app.example.com"), middlewares.WithFallback("")},
			wantOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := serve(req, ok, middlewares.CORS(tt.opts...))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET,POST,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
			assert.Contains(t, rec.Header().Values("Vary"), "Origin")
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/test", "/email/send", "/unknown"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			called := false
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			req.Header.Set("Origin", "https://nfc-custom-domain.vercel.app")
			rec := serve(req, func(c internal.Context) error {
				called = true
				return ok(c)
			}, middlewares.CORS())

			assert.False(t, called)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Equal(t, "https://nfc-custom-domain.vercel.app", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_ErrorResponsesCarryHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPut, "/test", nil)
	req.Header.Set("Origin", "http://rubujakcyp.online:3002")
	rec := serve(req, ok, middlewares.CORS())

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "http://rubujakcyp.online:3002", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Allow"))
}

func TestCORS_OnFallback(t *testing.T) {
	t.Parallel()

	var seen []string
	mw := middlewares.CORS(middlewares.WithOnFallback(func(origin string) {
		seen = append(seen, origin)
	}))

	listed := httptest.NewRequest(http.MethodGet, "/test", nil)
	listed.Header.Set("Origin", "http://localhost:3002")
	serve(listed, ok, mw)

	unlisted := httptest.NewRequest(http.MethodGet, "/test", nil)
	unlisted.Header.Set("Origin", "https://other.example")
	serve(unlisted, ok, mw)

	assert.Equal(t, []string{"https://other.example"}, seen)
}
