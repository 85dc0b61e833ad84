package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	textPolicy   *bluemonday.Policy
	initOnce     sync.Once
)

// safeElements is the formatting subset of the email policy.
var safeElements = []string{
	"p", "br",
	"strong", "b", "em", "i", "u", "s",
	"ul", "ol", "li",
	"code", "pre", "blockquote",
}

// emailLayoutElements are structural tags that editor exports rely on.
var emailLayoutElements = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"div", "hr",
	"table", "thead", "tbody", "tr", "td", "th",
}

var targetPattern = regexp.MustCompile(`^_(blank|self|parent|top)$`)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()

		emailPolicy = newEmailPolicy()

		textPolicy = bluemonday.StrictPolicy()
		textPolicy.AddSpaceWhenStrippingTag(true)
	})
}

// newEmailPolicy builds the allow-list for editor-authored email HTML:
// the safe formatting subset and layout tags plus img, a and span.
// Only a[href,target] and img[src,alt] attributes survive; URLs are limited
// to http, https and mailto. script and style elements are dropped with
// their content.
func newEmailPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	// Anchors keep exactly the attributes the author wrote.
	p.RequireNoFollowOnLinks(false)
	p.AllowElements(safeElements...)
	p.AllowElements(emailLayoutElements...)
	p.AllowElements("span", "a", "img")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(targetPattern).OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	return p
}

// StripHTML removes all tags and returns escaped plain text.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// PlainText renders an HTML document as unescaped text with collapsed
// whitespace. Used for the text/plain alternative of an email.
func PlainText(s string) string {
	initPolicies()
	return strings.Join(strings.Fields(html.UnescapeString(textPolicy.Sanitize(s))), " ")
}
