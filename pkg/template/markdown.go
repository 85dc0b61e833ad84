package template

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// newMarkdown returns the markdown converter used by markdown blocks.
// Raw HTML in the source is omitted (goldmark's default, unsafe mode off).
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(NewButtonExtension()),
	)
}

func renderMarkdown(md goldmark.Markdown, source string) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ButtonNode is an inline call-to-action written as [!button|Label](URL).
type ButtonNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

// KindButtonNode is the AST node kind for ButtonNode.
var KindButtonNode = ast.NewNodeKind("Button")

const buttonPrefix = "[!button|"

func (n *ButtonNode) Kind() ast.NodeKind {
	return KindButtonNode
}

func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":   string(n.URL),
		"Label": string(n.Label),
	}, nil)
}

type buttonParser struct{}

// NewButtonParser creates the inline parser for [!button|Label](URL).
func NewButtonParser() parser.InlineParser {
	return &buttonParser{}
}

func (p *buttonParser) Trigger() []byte {
	return []byte{'['}
}

func (p *buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, []byte(buttonPrefix)) {
		return nil
	}

	rest := line[len(buttonPrefix):]
	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd < 0 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}

	urlPart := rest[labelEnd+2:]
	urlEnd := bytes.IndexByte(urlPart, ')')
	if urlEnd < 0 {
		return nil
	}

	block.Advance(len(buttonPrefix) + labelEnd + 2 + urlEnd + 1)

	return &ButtonNode{
		Label: rest[:labelEnd],
		URL:   urlPart[:urlEnd],
	}
}

type buttonRenderer struct {
	html.Config
}

// NewButtonRenderer creates the HTML renderer for ButtonNode.
// Buttons are rendered with the same inline styles as call-to-action blocks.
func NewButtonRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &buttonRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButtonNode, r.renderButton)
}

func (r *buttonRenderer) renderButton(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ButtonNode)
	url := n.URL
	if html.IsDangerousURL(url) {
		url = []byte("#")
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(url, true)))
	_, _ = w.WriteString(`" style="` + buttonStyle + `" target="_blank">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkSkipChildren, nil
}

// ButtonExtension registers the button syntax with goldmark.
type ButtonExtension struct{}

func (e *ButtonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewButtonParser(), 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewButtonRenderer(), 50),
	))
}

// NewButtonExtension creates the button extension.
func NewButtonExtension() goldmark.Extender {
	return &ButtonExtension{}
}
