// sqlite_ops.go provides connection management for both supported engines.
//
// SQLite runs in WAL mode with a busy timeout so the MCP server and the web
// widget can read while an import writes. PostgreSQL is reached through the
// pgx stdlib driver and needs no pragmas.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jpl-au/glossd/internal/query"

	// Register the pgx driver as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Register the sqlite driver as "sqlite".
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL engine behind a store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect accepts the driver names users are likely to type.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx", "pg":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

// driverName is the database/sql registration name.
func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

func (d Dialect) placeholders() sq.PlaceholderFormat {
	if d == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// runner is satisfied by both *sql.DB and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLStore implements Store over database/sql.
type SQLStore struct {
	conn    *sql.DB
	db      runner
	dialect Dialect
	sb      sq.StatementBuilderType
	caps    query.Capabilities
}

// Compile-time interface compliance check.
var _ Store = (*SQLStore)(nil)

// Open connects to the database named by driver and dsn, applies engine
// settings and probes regex support. For SQLite the dsn is a file path.
// The caller should call Close on the returned store.
func Open(driver, dsn string) (*SQLStore, error) {
	d, err := ParseDialect(driver)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, ErrNoDSN
	}

	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if d == DialectSQLite {
		if err := sqlitePragmas(db); err != nil {
			db.Close()
			return nil, err
		}
	} else if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", d, err)
	}

	s := &SQLStore{
		conn:    db,
		db:      db,
		dialect: d,
		sb:      sq.StatementBuilder.PlaceholderFormat(d.placeholders()),
	}
	s.caps = s.probe(context.Background())
	return s, nil
}

// OpenSQLite is shorthand for Open("sqlite", path).
func OpenSQLite(path string) (*SQLStore, error) {
	return Open(string(DialectSQLite), path)
}

func sqlitePragmas(db *sql.DB) error {
	pragmas := []struct{ stmt, what string }{
		// Readers proceed while a writer holds the lock.
		{`PRAGMA journal_mode=WAL`, "setting WAL mode"},
		{`PRAGMA busy_timeout=5000`, "setting busy timeout"},
		// NORMAL is corruption-safe under WAL.
		{`PRAGMA synchronous=NORMAL`, "setting synchronous mode"},
		{`PRAGMA foreign_keys=ON`, "enabling foreign keys"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			return fmt.Errorf("%s: %w", p.what, err)
		}
	}
	return nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times.
func (s *SQLStore) Init() error {
	return execSchema(s.conn, s.dialect)
}

// Close releases the database connection.
func (s *SQLStore) Close() error {
	return s.conn.Close()
}

// DB exposes the underlying connection.
func (s *SQLStore) DB() *sql.DB {
	return s.conn
}

// Dialect reports the connected engine.
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

// Capabilities reports what the probe found at open time.
func (s *SQLStore) Capabilities() query.Capabilities {
	return s.caps
}

// Checkpoint writes all WAL data back to the main database file and
// truncates the WAL.
func (s *SQLStore) Checkpoint(ctx context.Context) error {
	if s.dialect != DialectSQLite {
		return nil
	}
	if _, err := s.conn.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// Tx runs fn in a transaction, committing on nil and rolling back otherwise.
func (s *SQLStore) Tx(ctx context.Context, fn func(Writer) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	inner := *s
	inner.db = tx
	if err := fn(&inner); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
