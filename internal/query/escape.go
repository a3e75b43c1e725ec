package query

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// LikeEscape is the escape character declared in every LIKE clause the
// builder emits.
const LikeEscape = `\`

// wordClass is the set of characters that make up a "word" for whole-word
// matching. Anything outside it (including string start and end) is a
// boundary.
const wordClass = `A-Za-z0-9_`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so the text matches literally when
// the clause declares ESCAPE '\'.
func EscapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// ContainsPattern returns the LIKE pattern for a substring match of q.
func ContainsPattern(q string) string {
	return "%" + EscapeLike(q) + "%"
}

// LookaroundPattern returns the case-insensitive regexp2 pattern matching q
// as a whole word. The highlighter uses the same constructor, which keeps
// row selection and marking in agreement.
func LookaroundPattern(q string) string {
	return `(?i)(?<![` + wordClass + `])` + regexp2.Escape(q) + `(?![` + wordClass + `])`
}

// SubstringPattern returns the case-insensitive regexp2 pattern matching q
// anywhere.
func SubstringPattern(q string) string {
	return `(?i)` + regexp2.Escape(q)
}

// BoundaryPattern returns the POSIX pattern for engines without lookaround.
// The boundary characters are consumed by the groups, which is harmless for
// a yes/no filter.
func BoundaryPattern(q string) string {
	return `(^|[^` + wordClass + `])` + regexp.QuoteMeta(q) + `($|[^` + wordClass + `])`
}
