// Package service defines the shared interface for glossary operations.
// Commands, the web widget, MCP tools and extensions depend on this
// interface rather than the concrete implementation, so tests can swap in
// fakes.
package service

import (
	"context"
	"database/sql"
	"io"

	"github.com/jpl-au/glossd/internal/exporter"
	"github.com/jpl-au/glossd/internal/importer"
	"github.com/jpl-au/glossd/internal/query"
	"github.com/jpl-au/glossd/internal/search"
	"github.com/jpl-au/glossd/internal/store"
)

// Service defines all glossary operations.
//
// Obtain one with glossary.New and always call Close when done:
//
//	svc, err := glossary.New(glossary.Options{})
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	res, err := svc.Search(ctx, search.Request{Query: "osmosis"})
type Service interface {
	// Close releases database resources.
	Close() error

	// Search runs one search. An empty query yields a help result without
	// touching the store. Store failures wrap search.ErrStore.
	Search(ctx context.Context, req search.Request) (*search.Result, error)

	// Collections lists the collections offered by the selector: those of
	// ownerScopeID when non-zero, else the pinned collection, else all.
	Collections(ctx context.Context, ownerScopeID int64) ([]store.Collection, error)

	// Collection returns one collection by id.
	Collection(ctx context.Context, id int64) (*store.Collection, error)

	// Entry returns one entry with its aliases.
	// Returns store.ErrNotFound if no entry has that id.
	Entry(ctx context.Context, id int64) (*store.EntryJSON, error)

	// AddCollection creates a collection under an owner scope.
	// Returns store.ErrAlreadyExists if the name is taken in that scope.
	AddCollection(ctx context.Context, ownerScopeID int64, name string) (int64, error)

	// AddEntry inserts an entry and its aliases atomically.
	AddEntry(ctx context.Context, e store.Entry, aliases []string) (int64, error)

	// Import loads YAML or JSON glossary files from src in one transaction.
	Import(ctx context.Context, w io.Writer, src string, opts importer.Options) (importer.Result, error)

	// Export writes collections to dst in the import file format, or to w
	// when dst is exporter.Stdout.
	Export(ctx context.Context, w io.Writer, dst string, opts exporter.Options) (exporter.Result, error)

	// Stats returns aggregate counts for the database.
	Stats(ctx context.Context) (*store.Stats, error)

	// Strategy reports the whole-word strategy chosen for this database.
	Strategy() query.Strategy

	// PerPage reports the configured page size.
	PerPage() int

	// Dialect reports which SQL engine backs the service.
	Dialect() store.Dialect

	// Location describes where the database lives: a file path for SQLite,
	// host and database name for PostgreSQL. Credentials are never included.
	Location() string

	// DB returns the underlying connection for extensions with their own
	// tables. Do not close it directly; use Close.
	DB() *sql.DB
}
