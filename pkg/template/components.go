package template

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
)

// Inline styles shared by all blocks. Email clients ignore most stylesheets.
const (
	textStyle        = "font-size:14px;line-height:24px;margin:16px 0"
	buttonStyle      = "background-color:#007bff;color:#ffffff;padding:10px 20px;text-decoration:none;display:inline-block;max-width:100%;font-size:14px;line-height:100%;text-align:center"
	dividerStyle     = "width:100%;border:none;border-top:1px solid #eaeaea;margin:26px 0"
	placeholderStyle = "padding:12px;border:1px dashed #cc0000;color:#cc0000;font-size:14px"
	sectionOpen      = `<table align="center" width="100%" border="0" cellpadding="0" cellspacing="0" role="presentation"><tbody><tr><td>`
	sectionClose     = `</td></tr></tbody></table>`
)

// Button is a call-to-action link.
type Button struct {
	URL   string
	Label string
}

// htmlWriter accumulates the first write error so components read linearly.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) paragraph(s string) {
	hw.raw(`<p style="` + textStyle + `">`)
	hw.text(s)
	hw.raw(`</p>`)
}

func (hw *htmlWriter) button(b Button) {
	hw.raw(`<a href="`)
	hw.text(string(templ.URL(b.URL)))
	hw.raw(`" style="` + buttonStyle + `" target="_blank">`)
	hw.text(b.Label)
	hw.raw(`</a>`)
}

// welcomeHeader renders the greeting, the message and the call-to-action.
func welcomeHeader(vars Variables, cta Button) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(sectionOpen)
		hw.paragraph("Hello, " + vars.Username + "!")
		hw.paragraph(vars.Message)
		hw.button(cta)
		hw.raw(sectionClose)
		return hw.err
	})
}

func textBlock(content string, vars Variables) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if content == "" {
			content = vars.Message
		}
		hw := &htmlWriter{w: w}
		hw.paragraph(content)
		return hw.err
	})
}

func buttonBlock(label string, cta Button) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if label != "" {
			cta.Label = label
		}
		hw := &htmlWriter{w: w}
		hw.raw(sectionOpen)
		hw.button(cta)
		hw.raw(sectionClose)
		return hw.err
	})
}

func dividerBlock() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<hr style="`+dividerStyle+`">`)
		return err
	})
}

func markdownBlock(md goldmark.Markdown, source string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out, err := renderMarkdown(md, source)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	})
}

func unknownBlock() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div style="`+placeholderStyle+`">Component not found</div>`)
		return err
	})
}
