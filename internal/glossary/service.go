// Package glossary provides the glossary Service: it opens the configured
// database, picks the whole-word strategy from the store's probed
// capabilities and the config override, and exposes search, browsing and
// authoring operations to the CLI, the web widget and MCP tools.
package glossary

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jpl-au/glossd/internal/config"
	"github.com/jpl-au/glossd/internal/exporter"
	"github.com/jpl-au/glossd/internal/importer"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/query"
	"github.com/jpl-au/glossd/internal/repo"
	"github.com/jpl-au/glossd/internal/search"
	"github.com/jpl-au/glossd/internal/service"
	"github.com/jpl-au/glossd/internal/store"
)

// Options selects the database. Empty fields fall back to config, then to
// discovery of .glossd/glossd.db.
type Options struct {
	DB     string // database name within .glossd (e.g. "biology")
	Dir    string // explicit .glossd directory, skipping discovery
	Driver string // sqlite or postgres
	DSN    string // connection string; for sqlite a file path
}

// Service implements service.Service over a store.Store.
type Service struct {
	store    store.Store
	search   *search.Service
	cfg      *config.Config
	location string
}

var _ service.Service = (*Service)(nil)

// New opens the database selected by opts and config.
// Returns repo.ErrNotInitialised if no SQLite database can be found.
func New(opts Options) (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	driver := opts.Driver
	if driver == "" {
		driver = cfg.Driver()
	}
	dialect, err := store.ParseDialect(driver)
	if err != nil {
		return nil, err
	}
	dsn := opts.DSN
	if dsn == "" {
		dsn = cfg.Database.DSN
	}

	var location string
	switch {
	case dialect == store.DialectPostgres:
		if dsn == "" {
			return nil, store.ErrNoDSN
		}
		location = describeDSN(dsn)
	case dsn != "":
		location = dsn
	default:
		dsn, err = repo.Locate(opts.DB, opts.Dir)
		if err != nil {
			return nil, err
		}
		location = dsn
	}

	st, err := store.Open(string(dialect), dsn)
	if err != nil {
		return nil, err
	}
	// Schema files are idempotent, so a database created by an older
	// release gains new tables on first open.
	if err := st.Init(); err != nil {
		st.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return NewWithStore(st, cfg, location), nil
}

// NewWithStore wraps an open store. The service takes ownership of st.
func NewWithStore(st store.Store, cfg *config.Config, location string) *Service {
	if cfg == nil {
		cfg = &config.Config{}
	}
	m := query.Select(st.Capabilities(), cfg.Strategy())
	return &Service{
		store: st,
		search: search.New(st, m, search.Options{
			PerPage:            cfg.PerPage(),
			Aliases:            cfg.Aliases(),
			PinnedCollectionID: cfg.PinnedCollection(),
		}),
		cfg:      cfg,
		location: location,
	}
}

// Init initialises a new glossd repository. See repo.Init.
func Init(force bool, db string, local bool, dir string) error {
	return repo.Init(force, db, local, dir)
}

// describeDSN reduces a PostgreSQL connection string to host and database.
func describeDSN(dsn string) string {
	c, err := pgx.ParseConfig(dsn)
	if err != nil {
		return "postgres"
	}
	host := net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
	return fmt.Sprintf("postgres://%s/%s", host, c.Database)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("service:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// Search runs one search.
func (s *Service) Search(ctx context.Context, req search.Request) (*search.Result, error) {
	return s.search.Search(ctx, req)
}

// Collections lists selector collections.
func (s *Service) Collections(ctx context.Context, ownerScopeID int64) ([]store.Collection, error) {
	return s.search.Collections(ctx, ownerScopeID)
}

// Collection returns one collection by id.
func (s *Service) Collection(ctx context.Context, id int64) (*store.Collection, error) {
	return s.store.Collection(ctx, id)
}

// Entry returns one entry with its aliases.
func (s *Service) Entry(ctx context.Context, id int64) (*store.EntryJSON, error) {
	e, err := s.store.Entry(ctx, id)
	if err != nil {
		return nil, err
	}
	aliases, err := s.store.Aliases(ctx, id)
	if err != nil {
		return nil, err
	}
	j := e.ToJSON(aliases)
	return &j, nil
}

// AddCollection creates a collection.
func (s *Service) AddCollection(ctx context.Context, ownerScopeID int64, name string) (int64, error) {
	return s.store.AddCollection(ctx, ownerScopeID, name)
}

// AddEntry inserts e and its aliases in one transaction.
func (s *Service) AddEntry(ctx context.Context, e store.Entry, aliases []string) (int64, error) {
	var id int64
	err := s.store.Tx(ctx, func(tx store.Writer) error {
		var err error
		id, err = tx.AddEntry(ctx, e)
		if err != nil {
			return err
		}
		for _, a := range aliases {
			if err := tx.AddAlias(ctx, id, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Import loads glossary files from src.
func (s *Service) Import(ctx context.Context, w io.Writer, src string, opts importer.Options) (importer.Result, error) {
	return importer.Run(ctx, w, s.store, src, opts)
}

// Export writes collections out in the import file format.
func (s *Service) Export(ctx context.Context, w io.Writer, dst string, opts exporter.Options) (exporter.Result, error) {
	return exporter.Run(ctx, w, s.store, dst, opts)
}

// Stats returns aggregate counts.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// Strategy reports the whole-word strategy in use.
func (s *Service) Strategy() query.Strategy {
	return s.search.Strategy()
}

// PerPage reports the configured page size.
func (s *Service) PerPage() int {
	return s.search.PerPage()
}

// Dialect reports the SQL engine.
func (s *Service) Dialect() store.Dialect {
	return s.store.Dialect()
}

// Location describes where the database lives.
func (s *Service) Location() string {
	return s.location
}

// Config returns the configuration the service was opened with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// DB returns the underlying connection.
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}
