package query

import (
	"errors"
	"strings"
)

// ErrUnknownStrategy is returned by ParseStrategy for unrecognised names.
var ErrUnknownStrategy = errors.New("unknown whole-word strategy")

// Builder produces search predicates for one backend. The zero value uses
// the LIKE fallback for whole-word searches.
type Builder struct {
	matcher WholeWordMatcher
}

// NewBuilder returns a Builder that delegates whole-word matching to m.
// A nil matcher selects PaddedLikeFallback.
func NewBuilder(m WholeWordMatcher) *Builder {
	if m == nil {
		m = PaddedLikeFallback{}
	}
	return &Builder{matcher: m}
}

// Matcher returns the whole-word strategy in use.
func (b *Builder) Matcher() WholeWordMatcher {
	if b == nil || b.matcher == nil {
		return PaddedLikeFallback{}
	}
	return b.matcher
}

// Build returns a predicate that is true when any of fields contains raw.
//
// raw is trimmed first. An empty phrase yields the neutral predicate and no
// arguments. Each field contributes one clause from the configured matcher:
// Contains in substring mode, Match in whole-word mode.
// Fields are SQL expressions supplied by the caller and are never escaped.
func (b *Builder) Build(raw string, wholeWord bool, fields ...string) Predicate {
	q := strings.TrimSpace(raw)
	if q == "" || len(fields) == 0 {
		return neutral()
	}

	preds := make([]Predicate, 0, len(fields))
	for _, f := range fields {
		if wholeWord {
			preds = append(preds, b.Matcher().Match(f, q))
			continue
		}
		preds = append(preds, b.Matcher().Contains(f, q))
	}
	return Or(preds...)
}
