// stats.go implements aggregate counts for `glossd db` and the MCP server.

package store

import (
	"context"
	"fmt"
)

// Stats returns row counts for every table.
func (s *SQLStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	stmt, args, err := s.sb.Select(
		"(SELECT COUNT(*) FROM collections)",
		"(SELECT COUNT(*) FROM entries)",
		"(SELECT COUNT(*) FROM entries WHERE approved = "+s.boolLiteral(true)+")",
		"(SELECT COUNT(*) FROM aliases)",
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(&st.Collections, &st.Entries, &st.Approved, &st.Aliases); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &st, nil
}
