// Package log provides centralised audit logging for glossd operations.
// Logs are stored in ~/.glossd/log/glossd-log.db and record every CLI
// command, MCP tool call and web search across projects.
//
// # Fluent API
//
//	log.Event("search:search", "search").
//		Author(cmd.Author()).
//		Query(q).
//		Collection(id).
//		Count(res.Total).
//		Write(err)
//
//	log.Event("glossary:import", "import").
//		Author(cmd.Author()).
//		Detail("file", path).
//		Count(n).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands, "mcp:{tool}" for MCP tools and "web:{route}" for the widget.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source     string // e.g., "search:search", "mcp:glossd_search"
	Author     string // who performed the action
	Action     string // verb: search, import, add, list, ...
	Query      string // search phrase, if any
	Collection int64  // collection targeted or scoped to, 0 for none
	EntryID    int64  // entry created or read, 0 for none

	// Output
	Count int64 // rows matched, imported or listed

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "search:search")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:glossd_search")
//   - Web widget: "web:{route}" (e.g., "web:search")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation. CLI commands use cmd.Author(),
// MCP tools use "mcp" and the widget uses "web".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Query records the search phrase.
func (b *Builder) Query(q string) *Builder {
	b.entry.Query = q
	return b
}

// Collection records the collection the operation targeted.
func (b *Builder) Collection(id int64) *Builder {
	b.entry.Collection = id
	return b
}

// EntryID records the entry the operation created or read.
func (b *Builder) EntryID(id int64) *Builder {
	b.entry.EntryID = id
	return b
}

// Count records how many rows the operation matched or wrote.
func (b *Builder) Count(n int64) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the entry's detail map. Use it for data
// that doesn't fit standard fields: scope, strategy, file names.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The id should be the absolute path to the .glossd directory or the DSN.
func SetProject(id string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(id)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
