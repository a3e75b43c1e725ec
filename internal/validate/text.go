package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length limits in characters.
const (
	MaxName  = 255
	MaxTerm  = 255
	MaxQuery = 1000
)

// Name validates a collection name and returns it trimmed.
func Name(s string) (string, error) {
	return text(s, MaxName, ErrInvalidName, "collection name")
}

// Term validates an entry term and returns it trimmed.
func Term(s string) (string, error) {
	return text(s, MaxTerm, ErrInvalidTerm, "term")
}

// Query normalises a search phrase. Search input is never rejected: null
// bytes are removed, the phrase is trimmed and cut to MaxQuery characters.
// Empty means "no search".
func Query(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
	if utf8.RuneCountInString(s) > MaxQuery {
		s = strings.TrimSpace(string([]rune(s)[:MaxQuery]))
	}
	return s
}

func text(s string, max int, sentinel error, what string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty %s", sentinel, what)
	}
	if strings.ContainsRune(s, 0) {
		return "", fmt.Errorf("%w: null byte in %s", sentinel, what)
	}
	if utf8.RuneCountInString(s) > max {
		return "", fmt.Errorf("%w: %s exceeds %d characters", ErrTooLong, what, max)
	}
	return s, nil
}
