package sanitizer

import (
	"html"
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// SubstitutePlaceholders replaces {{token}} markers with HTML-escaped values.
// Whitespace inside the braces is ignored. Tokens with no value in values
// are left as they are.
func SubstitutePlaceholders(s string, values map[string]string) string {
	if len(values) == 0 {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := placeholderPattern.FindStringSubmatch(m)[1]
		v, ok := values[key]
		if !ok {
			return m
		}
		return html.EscapeString(v)
	})
}
