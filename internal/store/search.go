// search.go implements the count and page queries behind a glossary search.
//
// Both queries read entries joined to their collection, so predicates may
// filter on either table. Alias matches arrive as an EXISTS subquery (see
// AliasMatch) and never multiply rows, so an entry appears at most once per
// result set without GROUP BY.

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jpl-au/glossd/internal/query"
)

const searchFrom = "entries e JOIN collections c ON c.id = e.collection_id"

// AliasMatch wraps a predicate over ColAlias so it selects entries having at
// least one matching alias.
func AliasMatch(pred query.Predicate) query.Predicate {
	return query.Predicate{
		SQL:  "EXISTS (SELECT 1 FROM aliases a WHERE a.entry_id = e.id AND (" + pred.SQL + "))",
		Args: pred.Args,
	}
}

// CountMatching counts distinct entries satisfying pred.
func (s *SQLStore) CountMatching(ctx context.Context, pred sq.Sqlizer) (int64, error) {
	stmt, args, err := s.sb.Select("COUNT(DISTINCT e.id)").
		From(searchFrom).
		Where(pred).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count matching: %w", err)
	}
	return n, nil
}

// FetchPage returns entries satisfying pred ordered by term then id. A
// non-positive limit returns nothing.
func (s *SQLStore) FetchPage(ctx context.Context, pred sq.Sqlizer, offset, limit int) ([]Hit, error) {
	if limit <= 0 {
		return nil, nil
	}
	if offset < 0 {
		offset = 0
	}

	stmt, args, err := s.sb.Select(
		"e.id", "e.term", "e.definition", "e.format", "e.collection_id", "c.name",
	).
		From(searchFrom).
		Where(pred).
		OrderBy(ColTerm+" ASC", "e.id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ID, &h.Term, &h.Definition, &h.Format, &h.CollectionID, &h.CollectionName); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	return hits, nil
}

// Approved selects entries visible to searchers.
func Approved() query.Predicate {
	return query.Predicate{SQL: ColApproved + " = ?", Args: []any{true}}
}

// InCollection restricts results to one collection.
func InCollection(id int64) query.Predicate {
	return query.Predicate{SQL: ColCollectionID + " = ?", Args: []any{id}}
}

// InOwnerScope restricts results to the collections of one owner scope.
func InOwnerScope(id int64) query.Predicate {
	return query.Predicate{SQL: ColOwnerScope + " = ?", Args: []any{id}}
}
