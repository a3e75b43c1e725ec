// schema.go defines the database schema and provides schema execution helpers.
//
// Schema files are embedded from sql/<dialect>/ and executed in alphabetical
// order (hence the numeric prefixes like 001_, 002_). Each file may hold
// several statements separated by semicolons at line ends. Statements are
// executed one at a time so the same files work through the pgx driver.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested collection or entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a collection name is reused within
	// the same owner scope.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnknownDriver is returned by Open for unsupported drivers.
	ErrUnknownDriver = errors.New("unknown database driver")
	// ErrNoDSN is returned by Open when no data source is configured.
	ErrNoDSN = errors.New("no database data source configured")
)

// ExecEmbedded executes all .sql files from fsys/dir in alphabetical order.
// Each file should use IF NOT EXISTS clauses for idempotency.
func ExecEmbedded(db *sql.DB, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		for _, stmt := range splitStatements(string(data)) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("exec %s: %w", entry.Name(), err)
			}
		}
	}
	return nil
}

// splitStatements splits on semicolons that end a line and drops comment-only
// and blank chunks.
func splitStatements(src string) []string {
	var out []string
	var cur strings.Builder
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}

// execSchema executes the embedded core schema for the dialect.
func execSchema(db *sql.DB, d Dialect) error {
	return ExecEmbedded(db, schemas, "sql/"+string(d))
}
