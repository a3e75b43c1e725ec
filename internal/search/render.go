package search

import (
	"bytes"
	"html"
	"strings"

	"github.com/jpl-au/glossd/internal/store"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	// Both are safe for concurrent use once built.
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
	md     = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

// RenderDefinition turns a stored definition into safe HTML according to
// its format. Highlighting runs on the result, never on stored text.
func RenderDefinition(def, format string) string {
	switch store.NormaliseFormat(format) {
	case store.FormatPlain:
		return strings.ReplaceAll(html.EscapeString(def), "\n", "<br>\n")
	case store.FormatMarkdown:
		var buf bytes.Buffer
		if err := md.Convert([]byte(def), &buf); err != nil {
			return html.EscapeString(def)
		}
		return ugc.Sanitize(buf.String())
	default:
		return ugc.Sanitize(def)
	}
}

// RenderTerm escapes a term for HTML output.
func RenderTerm(term string) string {
	return html.EscapeString(term)
}

// PlainText strips all markup from rendered HTML, for terminals and MCP
// clients that do not render HTML.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
