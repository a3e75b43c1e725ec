package highlight

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// rawElements hold text that must not gain markup.
var rawElements = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
	"title":    true,
}

// MarkHTML marks matches inside the text nodes of s. Tags, attributes,
// comments and text nodes without a match are copied byte for byte. A matched
// text node is decoded, marked, and re-escaped, so entities such as &amp;
// match the character they stand for.
func (h *Highlighter) MarkHTML(s string) string {
	if !h.Active() || s == "" {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))
	skip := ""

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if !errors.Is(z.Err(), io.EOF) {
				return s
			}
			return b.String()
		}

		// Raw must be copied before TagName, which lowercases in place.
		raw := string(z.Raw())

		switch tt {
		case html.TextToken:
			if skip != "" {
				b.WriteString(raw)
				continue
			}
			b.WriteString(h.markText(raw))
		case html.StartTagToken:
			name, _ := z.TagName()
			if n := string(bytes.ToLower(name)); rawElements[n] {
				skip = n
			}
			b.WriteString(raw)
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(bytes.ToLower(name)) == skip {
				skip = ""
			}
			b.WriteString(raw)
		default:
			b.WriteString(raw)
		}
	}
}

func (h *Highlighter) markText(raw string) string {
	out, ok := h.mark(html.UnescapeString(raw), html.EscapeString)
	if !ok {
		return raw
	}
	return out
}
