// Package welcome composes, previews and sends welcome emails.
package welcome

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailforge/pkg/cache"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/mailer"
	"github.com/dmitrymomot/mailforge/pkg/metrics"
	"github.com/dmitrymomot/mailforge/pkg/sanitizer"
	"github.com/dmitrymomot/mailforge/pkg/template"
	"github.com/dmitrymomot/mailforge/pkg/validator"
)

// Tag attached to every message at the provider.
const tagCategory = "category"

// Service runs the preview and send pipelines. It holds no per-request state.
type Service struct {
	assembler *template.Assembler
	mailer    *mailer.Mailer
	cache     cache.Cache[template.Rendered]
	metrics   *metrics.Metrics
	logger    *slog.Logger
	cacheTTL  time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables the preview cache. Entries expire after ttl;
// zero uses the backend default.
func WithCache(c cache.Cache[template.Rendered], ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithMetrics records pipeline results.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service.
func NewService(asm *template.Assembler, m *mailer.Mailer, opts ...Option) *Service {
	s := &Service{
		assembler: asm,
		mailer:    m,
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview renders the requested composition.
// Invalid input returns validator.ValidationErrors or an error wrapping
// ErrInvalidDesign; render failures wrap ErrRender.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (*template.Rendered, error) {
	if err := validator.ValidateStruct(req); err != nil {
		s.metrics.Preview(metrics.ResultInvalid)
		return nil, err
	}

	blocks, err := previewBlocks(req)
	if err != nil {
		s.metrics.Preview(metrics.ResultInvalid)
		return nil, err
	}
	vars := req.Variables()

	if s.cache == nil {
		r, err := s.render(ctx, blocks, vars)
		if err != nil {
			s.metrics.Preview(metrics.ResultError)
			return nil, err
		}
		s.metrics.Preview(metrics.ResultOK)
		return r, nil
	}

	key, err := previewKey(blocks, vars)
	if err != nil {
		s.metrics.Preview(metrics.ResultError)
		return nil, errors.Join(ErrRender, err)
	}
	r, hit, err := cache.GetOrSet(ctx, s.cache, key, func(ctx context.Context) (template.Rendered, time.Duration, error) {
		r, err := s.render(ctx, blocks, vars)
		if err != nil {
			return template.Rendered{}, 0, err
		}
		return *r, s.cacheTTL, nil
	})
	if err != nil {
		s.metrics.Preview(metrics.ResultError)
		return nil, err
	}
	if hit {
		s.metrics.Preview(metrics.ResultCacheHit)
	} else {
		s.metrics.Preview(metrics.ResultOK)
	}
	return &r, nil
}

// Compose produces the HTML and plain-text bodies for req without sending.
// Client-supplied HTML is sanitized and has {{username}} and {{message}}
// substituted when at least one variable is present; otherwise it is used
// verbatim. Without HTML, req.Blocks (or the fixed template) are assembled.
func (s *Service) Compose(ctx context.Context, req SendRequest) (html, text string, err error) {
	vars := req.Variables()

	switch {
	case req.HTML != "" && !vars.IsZero():
		html = sanitizer.SanitizeEmailHTML(req.HTML, vars.Placeholders())
	case req.HTML != "":
		html = req.HTML
	default:
		blocks := req.Blocks
		if len(blocks) == 0 {
			blocks = template.DefaultBlocks()
		}
		r, err := s.render(ctx, blocks, vars)
		if err != nil {
			return "", "", err
		}
		html = r.HTML
	}

	return html, sanitizer.PlainText(html), nil
}

// Send validates req, composes the email and makes exactly one delivery
// attempt. Validation failures return validator.ValidationErrors before
// any rendering or provider call. A provider failure returns an Outcome
// carrying the provider detail together with an error wrapping
// mailer.ErrSendFailed.
func (s *Service) Send(ctx context.Context, req SendRequest) (*mailer.Outcome, error) {
	if err := validator.ValidateStruct(req); err != nil {
		s.metrics.Delivery(metrics.ResultInvalid)
		return nil, err
	}

	html, text, err := s.Compose(ctx, req)
	if err != nil {
		s.metrics.Delivery(metrics.ResultError)
		return nil, err
	}

	out, err := s.mailer.Deliver(ctx, mailer.Message{
		To:   req.To,
		HTML: html,
		Text: text,
		Tags: mailer.Tags{tagCategory: "welcome"},
	})
	switch {
	case err == nil:
		s.metrics.Delivery(metrics.ResultOK)
		s.logger.InfoContext(ctx, "welcome email accepted", slog.String("id", out.MessageID))
	case out != nil && out.Err != nil:
		s.metrics.Delivery(metrics.ResultRejected)
		s.logger.WarnContext(ctx, "welcome email rejected",
			slog.String("provider", out.Err.Provider),
			slog.Int("status", out.Err.StatusCode),
			slog.String("reason", out.Err.Message),
		)
	default:
		s.metrics.Delivery(metrics.ResultInvalid)
	}
	return out, err
}

func (s *Service) render(ctx context.Context, blocks []template.Block, vars template.Variables) (*template.Rendered, error) {
	start := time.Now()
	r, err := s.assembler.Assemble(ctx, blocks, vars)
	s.metrics.Render(time.Since(start))
	if err != nil {
		s.logger.ErrorContext(ctx, "render failed", slog.Any("error", err))
		return nil, errors.Join(ErrRender, err)
	}
	return r, nil
}

func previewBlocks(req PreviewRequest) ([]template.Block, error) {
	switch {
	case len(req.Design) > 0:
		blocks, err := template.FromDesign(req.Design)
		if err != nil {
			return nil, errors.Join(ErrInvalidDesign, err)
		}
		return blocks, nil
	case len(req.Blocks) > 0:
		return template.NewComposition(req.Blocks).Blocks(), nil
	default:
		return template.DefaultBlocks(), nil
	}
}

// previewKey hashes the inputs that determine the rendered HTML.
func previewKey(blocks []template.Block, vars template.Variables) (string, error) {
	b, err := json.Marshal(blocks)
	if err != nil {
		return "", err
	}
	return cache.Key("preview", b, []byte(vars.Username), []byte(vars.Message)), nil
}
