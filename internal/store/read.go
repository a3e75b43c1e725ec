// read.go implements lookups of collections, entries and aliases.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ListCollections returns collections with their approved entry counts.
func (s *SQLStore) ListCollections(ctx context.Context, f CollectionFilter) ([]Collection, error) {
	b := s.sb.Select("c.id", "c.owner_scope_id", "c.name", "c.created_at",
		"COUNT(e.id)").
		From("collections c").
		LeftJoin("entries e ON e.collection_id = c.id AND " + ColApproved + " = " + s.boolLiteral(true)).
		GroupBy("c.id", "c.owner_scope_id", "c.name", "c.created_at").
		OrderBy("c.name ASC", "c.id ASC")

	switch {
	case f.OwnerScopeID > 0:
		b = b.Where(sq.Eq{ColOwnerScope: f.OwnerScopeID})
	case f.ID > 0:
		b = b.Where(sq.Eq{"c.id": f.ID})
	}

	stmt, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build collections: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var out []Collection
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.OwnerScopeID, &c.Name, &c.CreatedAt, &c.Entries); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Collection fetches one collection by id.
func (s *SQLStore) Collection(ctx context.Context, id int64) (*Collection, error) {
	list, err := s.ListCollections(ctx, CollectionFilter{ID: id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("collection %d: %w", id, ErrNotFound)
	}
	return &list[0], nil
}

// FindCollection looks a collection up by owner scope and exact name.
func (s *SQLStore) FindCollection(ctx context.Context, ownerScopeID int64, name string) (*Collection, error) {
	stmt, args, err := s.sb.Select("id", "owner_scope_id", "name", "created_at").
		From("collections").
		Where(sq.Eq{"owner_scope_id": ownerScopeID, "name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find collection: %w", err)
	}

	var c Collection
	err = s.db.QueryRowContext(ctx, stmt, args...).Scan(&c.ID, &c.OwnerScopeID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("collection %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find collection %q: %w", name, err)
	}
	return &c, nil
}

// Entry fetches one entry by id.
func (s *SQLStore) Entry(ctx context.Context, id int64) (*Entry, error) {
	stmt, args, err := s.sb.Select("id", "collection_id", "term", "definition", "format", "approved", "created_at").
		From("entries").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entry: %w", err)
	}
	e, err := scanEntry(s.db.QueryRowContext(ctx, stmt, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", id, err)
	}
	return e, nil
}

// Entries returns every entry of a collection, approved or not, ordered by
// term then id.
func (s *SQLStore) Entries(ctx context.Context, collectionID int64) ([]Entry, error) {
	stmt, args, err := s.sb.Select("id", "collection_id", "term", "definition", "format", "approved", "created_at").
		From("entries").
		Where(sq.Eq{"collection_id": collectionID}).
		OrderBy("term ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entries: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("entries of %d: %w", collectionID, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Aliases returns an entry's aliases in insertion order.
func (s *SQLStore) Aliases(ctx context.Context, entryID int64) ([]string, error) {
	stmt, args, err := s.sb.Select("alias").
		From("aliases").
		Where(sq.Eq{"entry_id": entryID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build aliases: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("aliases of %d: %w", entryID, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanEntry(sc scanner) (*Entry, error) {
	var e Entry
	if err := sc.Scan(&e.ID, &e.CollectionID, &e.Term, &e.Definition, &e.Format, &e.Approved, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// boolLiteral renders a boolean constant in the dialect's syntax.
func (s *SQLStore) boolLiteral(v bool) string {
	switch {
	case s.dialect == DialectPostgres && v:
		return "TRUE"
	case s.dialect == DialectPostgres:
		return "FALSE"
	case v:
		return "1"
	default:
		return "0"
	}
}
