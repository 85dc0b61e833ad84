package template

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
)

// Defaults for the call-to-action button and inbox preview line.
const (
	DefaultButtonURL   = "https://rubujakcyp.online"
	DefaultButtonLabel = "Visit rubujakcyp.online"
	DefaultPreviewText = "Welcome to our platform!"
)

const documentHead = `<!DOCTYPE html>` +
	`<html lang="en" dir="ltr"><head>` +
	`<meta http-equiv="Content-Type" content="text/html; charset=UTF-8">` +
	`<meta name="viewport" content="width=device-width, initial-scale=1.0">` +
	`<meta name="x-apple-disable-message-reformatting">` +
	`<!--[if mso]><style type="text/css">` +
	`table { border-collapse: collapse; border-spacing: 0; }` +
	`td, p, a { font-family: Arial, Helvetica, sans-serif !important; }` +
	`a { text-decoration: none !important; }` +
	`</style><![endif]-->` +
	`</head>` +
	`<body style="font-family:Arial, sans-serif;padding:20px;background-color:#ffffff;margin:0">`

const (
	previewOpen    = `<div style="display:none;overflow:hidden;line-height:1px;opacity:0;max-height:0;max-width:0">`
	containerOpen  = `<table align="center" width="100%" border="0" cellpadding="0" cellspacing="0" role="presentation" style="max-width:37.5em;margin:0 auto;width:100%"><tbody><tr style="width:100%"><td>`
	containerClose = `</td></tr></tbody></table>`
	documentFoot   = `</body></html>`
)

// Rendered is an assembled email document.
type Rendered struct {
	GeneratedAt time.Time
	HTML        string
}

// Assembler turns block collections into HTML documents.
// It is safe for concurrent use.
type Assembler struct {
	md          goldmark.Markdown
	now         func() time.Time
	cta         Button
	previewText string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithButton sets the call-to-action target and label.
// Empty values keep the defaults.
func WithButton(url, label string) Option {
	return func(a *Assembler) {
		if url != "" {
			a.cta.URL = url
		}
		if label != "" {
			a.cta.Label = label
		}
	}
}

// WithPreviewText sets the hidden inbox preview line. Empty disables it.
func WithPreviewText(text string) Option {
	return func(a *Assembler) {
		a.previewText = text
	}
}

// WithClock overrides the clock used for Rendered.GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		md:          newMarkdown(),
		now:         time.Now,
		cta:         Button{URL: DefaultButtonURL, Label: DefaultButtonLabel},
		previewText: DefaultPreviewText,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble renders blocks in ascending Order (ties keep input order) inside
// the document shell. Missing variables fall back to the default display values.
func (a *Assembler) Assemble(ctx context.Context, blocks []Block, vars Variables) (*Rendered, error) {
	var sb strings.Builder
	if err := a.Document(blocks, vars).Render(ctx, &sb); err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}
	return &Rendered{
		HTML:        sb.String(),
		GeneratedAt: a.now(),
	}, nil
}

// Welcome renders the fixed welcome template.
func (a *Assembler) Welcome(ctx context.Context, vars Variables) (*Rendered, error) {
	return a.Assemble(ctx, DefaultBlocks(), vars)
}

// Document returns the full email as a templ component.
func (a *Assembler) Document(blocks []Block, vars Variables) templ.Component {
	sorted := sortBlocks(blocks)
	vars = vars.WithDefaults()

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(documentHead)
		if a.previewText != "" {
			hw.raw(previewOpen)
			hw.text(a.previewText)
			hw.raw(`</div>`)
		}
		hw.raw(containerOpen)
		if hw.err != nil {
			return hw.err
		}

		for _, b := range sorted {
			hw.raw(`<div>`)
			if hw.err != nil {
				return hw.err
			}
			if err := a.component(b, vars).Render(ctx, w); err != nil {
				return err
			}
			hw.raw(`</div>`)
		}

		hw.raw(containerClose)
		hw.raw(documentFoot)
		return hw.err
	})
}

// component maps a block to its renderer. Unknown kinds get a visible placeholder.
func (a *Assembler) component(b Block, vars Variables) templ.Component {
	switch b.Kind {
	case KindWelcomeHeader:
		return welcomeHeader(vars, a.cta)
	case KindText:
		return textBlock(b.Content, vars)
	case KindButton:
		return buttonBlock(b.Content, a.cta)
	case KindDivider:
		return dividerBlock()
	case KindMarkdown:
		return markdownBlock(a.md, b.Content)
	default:
		return unknownBlock()
	}
}
