package query

import (
	"fmt"
	"regexp"
	"strings"
)

// Strategy names a whole-word matching technique.
type Strategy string

const (
	// StrategyAuto lets Select pick the best strategy the backend supports.
	StrategyAuto Strategy = "auto"
	// StrategyNative uses a POSIX regex operator with explicit boundary groups.
	StrategyNative Strategy = "native"
	// StrategyLookaround uses a regex function that understands lookbehind.
	StrategyLookaround Strategy = "lookaround"
	// StrategyLike pads the field with spaces and tests four LIKE patterns.
	StrategyLike Strategy = "like"
)

// Strategies lists every accepted strategy name, in preference order after auto.
var Strategies = []Strategy{StrategyAuto, StrategyNative, StrategyLookaround, StrategyLike}

// ParseStrategy converts a config value to a Strategy. The empty string is auto.
func ParseStrategy(s string) (Strategy, error) {
	v := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return StrategyAuto, nil
	}
	for _, known := range Strategies {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Capabilities describes what the connected database can evaluate.
type Capabilities struct {
	// POSIXRegex is true when a case-insensitive POSIX operator (~*) exists.
	POSIXRegex bool
	// LookaroundRegex is true when REGEXP accepts lookbehind/lookahead.
	LookaroundRegex bool
}

// WholeWordMatcher builds the whole-word predicate for one field. Contains
// builds the substring predicate with the same engine, so both modes fold
// case identically and substring results always include whole-word results.
// Implementations must be safe for concurrent use.
type WholeWordMatcher interface {
	Strategy() Strategy
	Match(field, q string) Predicate
	Contains(field, q string) Predicate
}

// Select returns the matcher for the given capabilities. An override that
// names a strategy the backend cannot run degrades to the LIKE fallback.
func Select(caps Capabilities, override Strategy) WholeWordMatcher {
	switch override {
	case StrategyNative:
		if caps.POSIXRegex {
			return NativeBoundaryRegex{}
		}
		return PaddedLikeFallback{}
	case StrategyLookaround:
		if caps.LookaroundRegex {
			return LookaroundRegex{}
		}
		return PaddedLikeFallback{}
	case StrategyLike:
		return PaddedLikeFallback{}
	}
	switch {
	case caps.POSIXRegex:
		return NativeBoundaryRegex{}
	case caps.LookaroundRegex:
		return LookaroundRegex{}
	default:
		return PaddedLikeFallback{}
	}
}

// NativeBoundaryRegex matches with PostgreSQL's case-insensitive ~* operator.
type NativeBoundaryRegex struct{}

func (NativeBoundaryRegex) Strategy() Strategy { return StrategyNative }

func (NativeBoundaryRegex) Match(field, q string) Predicate {
	return Predicate{
		SQL:  field + " ~* ?",
		Args: []any{BoundaryPattern(q)},
	}
}

func (NativeBoundaryRegex) Contains(field, q string) Predicate {
	return Predicate{
		SQL:  field + " ~* ?",
		Args: []any{regexp.QuoteMeta(q)},
	}
}

// LookaroundRegex matches with a REGEXP operator backed by an engine that
// supports lookaround, such as the function the SQLite store registers.
type LookaroundRegex struct{}

func (LookaroundRegex) Strategy() Strategy { return StrategyLookaround }

func (LookaroundRegex) Match(field, q string) Predicate {
	return Predicate{
		SQL:  field + " REGEXP ?",
		Args: []any{LookaroundPattern(q)},
	}
}

func (LookaroundRegex) Contains(field, q string) Predicate {
	return Predicate{
		SQL:  field + " REGEXP ?",
		Args: []any{SubstringPattern(q)},
	}
}

// PaddedLikeFallback works on any SQL engine. Only whitespace counts as a
// boundary, so "cat," does not match the word "cat".
type PaddedLikeFallback struct{}

func (PaddedLikeFallback) Strategy() Strategy { return StrategyLike }

// Match pads the field with a space on each side, so the "Q %" and "% Q"
// patterns never fire. The interior and whole-field patterns already cover
// a word at the start or end; the padding must stay.
func (PaddedLikeFallback) Match(field, q string) Predicate {
	e := EscapeLike(q)
	padded := "LOWER(' ' || " + field + " || ' ') LIKE LOWER(?) ESCAPE '" + LikeEscape + "'"
	return Predicate{
		SQL: strings.Join([]string{padded, padded, padded, padded}, " OR "),
		Args: []any{
			"% " + e + " %",
			e + " %",
			"% " + e,
			" " + e + " ",
		},
	}
}

func (PaddedLikeFallback) Contains(field, q string) Predicate {
	return Predicate{
		SQL:  "LOWER(" + field + ") LIKE LOWER(?) ESCAPE '" + LikeEscape + "'",
		Args: []any{ContainsPattern(q)},
	}
}
