// regexp.go registers the SQLite REGEXP and lower functions.
//
// SQLite parses "X REGEXP Y" but ships no implementation; it calls a
// user function named regexp with (Y, X), so the pattern arrives first.
// Patterns are compiled with regexp2 so the lookaround strategy works.
//
// The built-in lower only folds ASCII. It is replaced with a Unicode-aware
// version so the LIKE paths fold "Über" the way (?i) patterns do.

package store

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	"modernc.org/sqlite"
)

// maxCachedPatterns bounds the compiled-pattern cache. The cache is dropped
// wholesale when it fills.
const maxCachedPatterns = 256

type patternCache struct {
	mu sync.RWMutex
	m  map[string]*regexp2.Regexp
}

var patterns = &patternCache{m: make(map[string]*regexp2.Regexp)}

func (c *patternCache) get(pattern string) (*regexp2.Regexp, error) {
	c.mu.RLock()
	re, ok := c.m[pattern]
	c.mu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if len(c.m) >= maxCachedPatterns {
		c.m = make(map[string]*regexp2.Regexp)
	}
	c.m[pattern] = re
	c.mu.Unlock()
	return re, nil
}

func init() {
	sqlite.MustRegisterDeterministicScalarFunction("regexp", 2, sqliteRegexp)
	sqlite.MustRegisterDeterministicScalarFunction("lower", 1, sqliteLower)
}

// sqliteLower evaluates lower(value). NULL stays NULL; other non-text values
// are lowered through their text form, as the built-in does.
func sqliteLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}

// sqliteRegexp evaluates regexp(pattern, value). NULL values never match.
func sqliteRegexp(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	pattern, ok := asString(args[0])
	if !ok {
		return nil, fmt.Errorf("regexp: pattern must be text")
	}
	value, ok := asString(args[1])
	if !ok {
		return int64(0), nil
	}

	re, err := patterns.get(pattern)
	if err != nil {
		return nil, fmt.Errorf("regexp: %w", err)
	}
	matched, err := re.MatchString(value)
	if err != nil {
		return nil, fmt.Errorf("regexp: %w", err)
	}
	if matched {
		return int64(1), nil
	}
	return int64(0), nil
}

func asString(v driver.Value) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	default:
		return "", false
	}
}
