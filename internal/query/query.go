// Package query builds the SQL predicate that selects glossary entries for a
// literal search phrase.
//
// The builder never touches a database. It produces a fragment with
// positional '?' placeholders and the ordered arguments that fill them, so
// callers can splice several predicates together by plain concatenation and
// let squirrel apply the dialect's placeholder format when the statement is
// rendered.
package query

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Neutral is the SQL text of the predicate that matches every row. An empty
// query produces it so callers can always AND the result into a WHERE clause.
const Neutral = "1=1"

// Predicate is a SQL boolean fragment plus its bound arguments, in the order
// their '?' placeholders appear.
type Predicate struct {
	SQL  string
	Args []any
}

// Compile-time check that a Predicate can be used directly in squirrel
// builders (Where, Having, sq.Or, sq.And).
var _ sq.Sqlizer = Predicate{}

// ToSql implements squirrel.Sqlizer. The fragment is parenthesised because
// squirrel joins Where parts with a bare AND.
func (p Predicate) ToSql() (string, []any, error) {
	if p.IsNeutral() {
		return p.SQL, nil, nil
	}
	return "(" + p.SQL + ")", p.Args, nil
}

// IsNeutral reports whether the predicate matches everything.
func (p Predicate) IsNeutral() bool {
	return p.SQL == Neutral && len(p.Args) == 0
}

// Or joins predicates with OR. Neutral operands make the result neutral.
// Arguments are concatenated in operand order.
func Or(preds ...Predicate) Predicate {
	return join(" OR ", preds)
}

// And joins predicates with AND, dropping neutral operands.
func And(preds ...Predicate) Predicate {
	var kept []Predicate
	for _, p := range preds {
		if !p.IsNeutral() {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return neutral()
	}
	return join(" AND ", kept)
}

func join(sep string, preds []Predicate) Predicate {
	if len(preds) == 0 {
		return neutral()
	}
	if len(preds) == 1 {
		return preds[0]
	}
	parts := make([]string, 0, len(preds))
	var args []any
	for _, p := range preds {
		if sep == " OR " && p.IsNeutral() {
			return neutral()
		}
		parts = append(parts, "("+p.SQL+")")
		args = append(args, p.Args...)
	}
	return Predicate{SQL: strings.Join(parts, sep), Args: args}
}

func neutral() Predicate {
	return Predicate{SQL: Neutral}
}
