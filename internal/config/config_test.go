package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mailforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "*", cfg.CORS.Fallback)
	assert.Len(t, cfg.CORS.AllowedOrigins, 4)
	assert.Equal(t, "Welcome to Our Platform!", cfg.Mailer.Subject)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ":9090"
  shutdown_timeout: 5s
cors:
  allowed_origins: ["https://app.example.com"]
  fallback: none
mailer:
  subject: Hello there
resend:
  from_email: hello@example.com
  from_name: Example
cache:
  enabled: true
  ttl: 1m
log:
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "none", cfg.CORS.Fallback)
	assert.Equal(t, "Hello there", cfg.Mailer.Subject)
	assert.Equal(t, "hello@example.com", cfg.Resend.FromEmail)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test_123")
	t.Setenv("MAILFORGE_ADDR", ":7070")
	t.Setenv("MAILFORGE_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("MAILFORGE_CACHE_ENABLED", "true")
	t.Setenv("SUBJECT_FROM_ENV", "Expanded")

	path := writeFile(t, `
server:
  addr: ":9090"
mailer:
  subject: ${SUBJECT_FROM_ENV}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "re_test_123", cfg.Resend.APIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "Expanded", cfg.Mailer.Subject)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "bad format", body: "log:\n  format: xml\n", wantErr: ErrInvalidConfig},
		{name: "bad redis url", body: "cache:\n  redis_url: localhost:6379\n", wantErr: ErrInvalidConfig},
		{name: "negative ttl", body: "cache:\n  ttl: -1s\n", wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeFile(t, tt.body))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := Load(writeFile(t, "server: [\n"))
		require.Error(t, err)
	})
}

func TestApplyEnv_IgnoresInvalidValues(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"MAILFORGE_SHUTDOWN_TIMEOUT": "soon",
		"MAILFORGE_CACHE_ENABLED":    "maybe",
		"MAILFORGE_LOG_LEVEL":        "   ",
		"REDIS_URL":                  "redis://cache:6379/0",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Config{Server: Server{ShutdownTimeout: time.Second}}
	cfg.Log.Level = "debug"
	applyEnv(&cfg, lookup)

	assert.Equal(t, time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "redis://cache:6379/0", cfg.Cache.RedisURL)
}
