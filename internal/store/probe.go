// probe.go detects which whole-word strategy the connected engine can run.
// The probe runs once at open time; every search on the store reuses the
// result.

package store

import (
	"context"

	"github.com/jpl-au/glossd/internal/query"
)

// probeWord is matched against a boundary-delimited and an embedded copy of
// itself, so a working engine answers yes then no.
const probeWord = "glossary"

func (s *SQLStore) probe(ctx context.Context) query.Capabilities {
	var caps query.Capabilities
	switch s.dialect {
	case DialectSQLite:
		caps.LookaroundRegex = s.probeOperator(ctx, "REGEXP", query.LookaroundPattern(probeWord))
	case DialectPostgres:
		caps.POSIXRegex = s.probeOperator(ctx, "~*", query.BoundaryPattern(probeWord))
	}
	return caps
}

func (s *SQLStore) probeOperator(ctx context.Context, op, pattern string) bool {
	stmt, args, err := s.sb.
		Select().
		Column("CASE WHEN CAST(? AS TEXT) "+op+" ? THEN 1 ELSE 0 END", "A "+probeWord+".", pattern).
		Column("CASE WHEN CAST(? AS TEXT) "+op+" ? THEN 1 ELSE 0 END", probeWord+"s", pattern).
		ToSql()
	if err != nil {
		return false
	}
	var hit, miss int
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(&hit, &miss); err != nil {
		return false
	}
	return hit == 1 && miss == 0
}
