// write.go implements the insert operations used by the importer and the
// add command. Ids come back through RETURNING, which both SQLite (3.35+)
// and PostgreSQL support.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/glossd/internal/validate"
)

// AddCollection creates a collection. Returns ErrAlreadyExists when the owner
// scope already has a collection with that name.
func (s *SQLStore) AddCollection(ctx context.Context, ownerScopeID int64, name string) (int64, error) {
	name, err := validate.Name(name)
	if err != nil {
		return 0, err
	}
	if _, err := s.FindCollection(ctx, ownerScopeID, name); err == nil {
		return 0, fmt.Errorf("collection %q: %w", name, ErrAlreadyExists)
	}

	stmt, args, err := s.sb.Insert("collections").
		Columns("owner_scope_id", "name", "created_at").
		Values(ownerScopeID, name, time.Now().Unix()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert collection: %w", err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert collection %q: %w", name, err)
	}
	return id, nil
}

// EnsureCollection returns the existing collection's id or creates it.
func (s *SQLStore) EnsureCollection(ctx context.Context, ownerScopeID int64, name string) (int64, bool, error) {
	name, err := validate.Name(name)
	if err != nil {
		return 0, false, err
	}
	c, err := s.FindCollection(ctx, ownerScopeID, name)
	if err == nil {
		return c.ID, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, false, err
	}
	id, err := s.AddCollection(ctx, ownerScopeID, name)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// AddEntry inserts an entry into an existing collection.
func (s *SQLStore) AddEntry(ctx context.Context, e Entry) (int64, error) {
	term, err := validate.Term(e.Term)
	if err != nil {
		return 0, err
	}
	if _, err := s.Collection(ctx, e.CollectionID); err != nil {
		return 0, err
	}
	created := e.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}

	stmt, args, err := s.sb.Insert("entries").
		Columns("collection_id", "term", "definition", "format", "approved", "created_at").
		Values(e.CollectionID, term, e.Definition, NormaliseFormat(e.Format), e.Approved, created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert entry: %w", err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert entry %q: %w", term, err)
	}
	return id, nil
}

// AddAlias attaches an alias to an entry. Blank aliases are ignored.
func (s *SQLStore) AddAlias(ctx context.Context, entryID int64, alias string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil
	}
	if _, err := s.Entry(ctx, entryID); err != nil {
		return err
	}

	stmt, args, err := s.sb.Insert("aliases").
		Columns("entry_id", "alias").
		Values(entryID, alias).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert alias: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert alias %q: %w", alias, err)
	}
	return nil
}
