package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Output formats accepted by Config.Format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config controls the base handler.
type Config struct {
	Output io.Writer `yaml:"-"`
	Level  string    `yaml:"level"`
	Format string    `yaml:"format"`
}

// ParseLevel converts "debug", "info", "warn" or "error" into a slog.Level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// New creates a logger with optional context extractors.
// JSON is the default format; "text" uses a human-readable console handler.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(withContext(newBaseHandler(cfg), extractors...))
}

func newBaseHandler(cfg Config) slog.Handler {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	level := ParseLevel(cfg.Level)

	if strings.EqualFold(cfg.Format, FormatText) {
		return charmlog.NewWithOptions(out, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
		})
	}

	return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
}
