// interfaces.go defines the storage abstraction for glossary persistence.
//
// The interfaces are granular (Reader, Writer, Maintainer) so consumers only
// depend on the capabilities they need. The search orchestration needs only
// a Reader; the importer needs only a Writer inside a transaction.

package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jpl-au/glossd/internal/query"
)

// Reader defines read-only operations.
type Reader interface {
	// CountMatching returns the number of distinct entries satisfying pred.
	CountMatching(ctx context.Context, pred sq.Sqlizer) (int64, error)

	// FetchPage returns one page of distinct entries satisfying pred,
	// ordered by term then id so paging is deterministic.
	FetchPage(ctx context.Context, pred sq.Sqlizer, offset, limit int) ([]Hit, error)

	// ListCollections returns collections for the selector with their
	// approved entry counts, ordered by name.
	ListCollections(ctx context.Context, f CollectionFilter) ([]Collection, error)

	// Collection fetches one collection by id.
	Collection(ctx context.Context, id int64) (*Collection, error)

	// FindCollection looks a collection up by owner scope and name.
	FindCollection(ctx context.Context, ownerScopeID int64, name string) (*Collection, error)

	// Entry fetches one entry by id, approved or not.
	Entry(ctx context.Context, id int64) (*Entry, error)

	// Entries returns every entry of a collection, approved or not.
	Entries(ctx context.Context, collectionID int64) ([]Entry, error)

	// Aliases returns the keyword aliases of an entry.
	Aliases(ctx context.Context, entryID int64) ([]string, error)

	// Stats returns aggregate counts.
	Stats(ctx context.Context) (*Stats, error)
}

// Writer defines operations that add glossary content.
type Writer interface {
	// AddCollection creates a collection and returns its id.
	AddCollection(ctx context.Context, ownerScopeID int64, name string) (int64, error)

	// EnsureCollection returns the id of the named collection, creating it
	// when missing. created reports which happened.
	EnsureCollection(ctx context.Context, ownerScopeID int64, name string) (id int64, created bool, err error)

	// AddEntry inserts an entry and returns its id.
	AddEntry(ctx context.Context, e Entry) (int64, error)

	// AddAlias attaches a keyword alias to an entry.
	AddAlias(ctx context.Context, entryID int64, alias string) error
}

// Maintainer defines lifecycle operations.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection.
	DB() *sql.DB

	// Dialect reports which SQL engine is connected.
	Dialect() Dialect

	// Capabilities reports the regex support found by the open-time probe.
	Capabilities() query.Capabilities

	// Checkpoint flushes the SQLite WAL. It is a no-op on PostgreSQL.
	Checkpoint(ctx context.Context) error
}

// Store combines every capability.
type Store interface {
	Reader
	Writer
	Maintainer

	// Tx runs fn inside a transaction. The Writer passed to fn commits with
	// the transaction or not at all.
	Tx(ctx context.Context, fn func(Writer) error) error
}
