// Package highlight wraps occurrences of a search phrase in marker strings.
//
// The pattern is built by the same constructors the query package uses for
// its lookaround strategy, so a highlighted occurrence is exactly an
// occurrence the database filter would have matched.
package highlight

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/jpl-au/glossd/internal/query"
)

// Default markers wrap matches for HTML output.
const (
	DefaultOpen  = "<mark>"
	DefaultClose = "</mark>"
)

// Highlighter marks one compiled phrase. It holds no mutable state and may be
// shared between goroutines.
type Highlighter struct {
	re    *regexp2.Regexp
	open  string
	close string
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithMarkers replaces the <mark> pair, e.g. with "**" for markdown output.
func WithMarkers(open, close string) Option {
	return func(h *Highlighter) {
		h.open = open
		h.close = close
	}
}

// New compiles the highlighter for raw. The phrase is trimmed; an empty
// phrase yields a highlighter that returns text unchanged.
func New(raw string, wholeWord bool, opts ...Option) *Highlighter {
	h := &Highlighter{open: DefaultOpen, close: DefaultClose}
	for _, o := range opts {
		o(h)
	}

	q := strings.TrimSpace(raw)
	if q == "" {
		return h
	}
	pattern := query.SubstringPattern(q)
	if wholeWord {
		pattern = query.LookaroundPattern(q)
	}
	// Escaped literals always compile; a failure leaves the highlighter inert.
	if re, err := regexp2.Compile(pattern, regexp2.None); err == nil {
		h.re = re
	}
	return h
}

// Active reports whether the highlighter will mark anything at all.
func (h *Highlighter) Active() bool {
	return h != nil && h.re != nil
}

// Mark wraps every non-overlapping match in text. text is treated as opaque
// characters; use MarkHTML for markup.
func (h *Highlighter) Mark(text string) string {
	if !h.Active() || text == "" {
		return text
	}
	out, _ := h.mark(text, identity)
	return out
}

// Highlight marks text that is already escaped or rendered HTML.
func Highlight(text, raw string, wholeWord bool) string {
	return New(raw, wholeWord).MarkHTML(text)
}

// span is a match position in runes.
type span struct{ start, end int }

func (h *Highlighter) matches(runes []rune) []span {
	var spans []span
	m, err := h.re.FindRunesMatch(runes)
	for err == nil && m != nil {
		if m.Length > 0 {
			spans = append(spans, span{m.Index, m.Index + m.Length})
		}
		m, err = h.re.FindNextMatch(m)
	}
	return spans
}

// mark splits text around matches and runs every piece through enc. The bool
// reports whether anything matched.
func (h *Highlighter) mark(text string, enc func(string) string) (string, bool) {
	runes := []rune(text)
	spans := h.matches(runes)
	if len(spans) == 0 {
		return text, false
	}

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(h.open)+len(h.close)))
	prev := 0
	for _, s := range spans {
		b.WriteString(enc(string(runes[prev:s.start])))
		b.WriteString(h.open)
		b.WriteString(enc(string(runes[s.start:s.end])))
		b.WriteString(h.close)
		prev = s.end
	}
	b.WriteString(enc(string(runes[prev:])))
	return b.String(), true
}

func identity(s string) string { return s }
