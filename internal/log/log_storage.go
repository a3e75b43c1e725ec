// log_storage.go implements SQLite-based persistent audit logging.
//
// The project field is a hash of the project directory, so logs from many
// projects can share one database without recording their paths. Errors
// while logging are reported on stderr and otherwise ignored; a search
// should succeed even if it cannot be recorded.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	project string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, source, author, action, query,
		                 collection_id, entry_id, result_count, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, e.Source, nilIfEmpty(e.Author), e.Action,
		nilIfEmpty(e.Query), nilIfZero(e.Collection), nilIfZero(e.EntryID),
		e.Count, success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "glossd: audit log write failed: %v\n", err)
	}
}

// dbPathFunc is the function that returns the database path.
// Tests can override this to use a temp directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Containers without a home directory log next to the project.
		return filepath.Join(".glossd", "log", "glossd-log.db")
	}
	return filepath.Join(home, ".glossd", "log", "glossd-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash creates a 16 hex character project identifier.
func hash(s string) string {
	h, err := blake2b.New(8, nil)
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS log (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			start         INTEGER NOT NULL,
			end           INTEGER NOT NULL,
			project       TEXT NOT NULL,
			source        TEXT NOT NULL,
			author        TEXT,
			action        TEXT NOT NULL,
			query         TEXT,
			collection_id INTEGER,
			entry_id      INTEGER,
			result_count  INTEGER NOT NULL DEFAULT 0,
			success       INTEGER NOT NULL,
			error         TEXT,
			detail        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_log_start ON log(start)`,
		`CREATE INDEX IF NOT EXISTS idx_log_project ON log(project)`,
		`CREATE INDEX IF NOT EXISTS idx_log_source ON log(source)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nilIfZero(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}
