// Package config loads mailforge settings from defaults, an optional YAML
// file and environment variables, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/mailer"
	"github.com/dmitrymomot/mailforge/pkg/mailer/resend"
	"github.com/dmitrymomot/mailforge/pkg/template"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full service configuration.
type Config struct {
	Server   Server              `yaml:"server"`
	CORS     CORS                `yaml:"cors"`
	Mailer   mailer.Config       `yaml:"mailer"`
	Resend   resend.Config       `yaml:"resend"`
	Template Template            `yaml:"template"`
	Cache    Cache               `yaml:"cache"`
	Log      logger.Config       `yaml:"log"`
	Sentry   logger.SentryConfig `yaml:"sentry"`
}

type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CORS mirrors middlewares.CORSConfig. Fallback is "*", an origin, or "none".
type CORS struct {
	Fallback       string   `yaml:"fallback"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Template struct {
	ButtonURL   string `yaml:"button_url"`
	ButtonLabel string `yaml:"button_label"`
}

// Cache controls the preview render cache. An empty RedisURL selects the
// in-memory backend.
type Cache struct {
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
	Enabled  bool          `yaml:"enabled"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 30 * time.Second,
		},
		CORS: CORS{
			Fallback: "*",
			AllowedOrigins: []string{
				"http://localhost:3002",
				"http://rubujakcyp.online:3002",
				"https://nfc-custom-domain.vercel.app",
				"https://rubujakcyp.online",
			},
		},
		Mailer: mailer.Config{Subject: mailer.DefaultSubject},
		Template: Template{
			ButtonURL:   template.DefaultButtonURL,
			ButtonLabel: template.DefaultButtonLabel,
		},
		Cache: Cache{TTL: 10 * time.Minute},
		Log:   logger.Config{Level: "info", Format: logger.FormatJSON},
		Sentry: logger.SentryConfig{
			Environment: "development",
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used. ${VAR} references inside the
// file are expanded before parsing.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg, os.LookupEnv)

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("merge defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Format {
	case logger.FormatJSON, logger.FormatText:
	default:
		errs = append(errs, fmt.Errorf("log.format must be %q or %q, got %q", logger.FormatJSON, logger.FormatText, c.Log.Format))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must not be negative"))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, errors.New("cache.ttl must not be negative"))
	}
	if u := c.Cache.RedisURL; u != "" && !strings.HasPrefix(u, "redis://") && !strings.HasPrefix(u, "rediss://") {
		errs = append(errs, fmt.Errorf("cache.redis_url must start with redis:// or rediss://, got %q", u))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// applyEnv overrides cfg with environment variables. Unset or empty
// variables leave the field untouched; unparsable numbers and durations
// are ignored.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				*dst = strings.TrimSpace(v)
				return
			}
		}
	}
	dur := func(dst *time.Duration, key string) {
		if v, ok := lookup(key); ok {
			if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
				*dst = d
			}
		}
	}

	str(&cfg.Server.Addr, "MAILFORGE_ADDR")
	dur(&cfg.Server.ShutdownTimeout, "MAILFORGE_SHUTDOWN_TIMEOUT")

	if v, ok := lookup("MAILFORGE_CORS_ALLOWED_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}
	str(&cfg.CORS.Fallback, "MAILFORGE_CORS_FALLBACK")

	str(&cfg.Mailer.Subject, "MAILFORGE_MAILER_SUBJECT")
	str(&cfg.Mailer.ReplyTo, "MAILFORGE_MAILER_REPLY_TO")

	str(&cfg.Resend.APIKey, "RESEND_API_KEY")
	str(&cfg.Resend.FromEmail, "RESEND_FROM_EMAIL")
	str(&cfg.Resend.FromName, "RESEND_FROM_NAME")

	str(&cfg.Template.ButtonURL, "MAILFORGE_BUTTON_URL")
	str(&cfg.Template.ButtonLabel, "MAILFORGE_BUTTON_LABEL")

	if v, ok := lookup("MAILFORGE_CACHE_ENABLED"); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Cache.Enabled = b
		}
	}
	dur(&cfg.Cache.TTL, "MAILFORGE_CACHE_TTL")
	str(&cfg.Cache.RedisURL, "MAILFORGE_REDIS_URL", "REDIS_URL")

	str(&cfg.Log.Level, "MAILFORGE_LOG_LEVEL")
	str(&cfg.Log.Format, "MAILFORGE_LOG_FORMAT")

	str(&cfg.Sentry.DSN, "SENTRY_DSN")
	str(&cfg.Sentry.Environment, "SENTRY_ENVIRONMENT")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
