// Package store persists glossary collections, entries and aliases.
// Implementations handle the actual database operations while consumers
// depend only on the interfaces, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Column expressions used by the search queries. Predicates built by callers
// must reference entries as "e" and collections as "c".
const (
	ColTerm         = "e.term"
	ColDefinition   = "e.definition"
	ColAlias        = "a.alias"
	ColCollectionID = "e.collection_id"
	ColOwnerScope   = "c.owner_scope_id"
	ColApproved     = "e.approved"
)

// Definition formats. HTML is the default for entries without one.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatPlain    = "plain"
)

// Collection groups entries. OwnerScopeID is the enclosing scope (a course)
// that may hold several collections.
type Collection struct {
	ID           int64  `json:"id"`
	OwnerScopeID int64  `json:"owner_scope_id"`
	Name         string `json:"name"`
	Entries      int64  `json:"entries"` // Approved entries only
	CreatedAt    int64  `json:"-"`
}

// Entry is one glossary term and its definition.
type Entry struct {
	ID           int64
	CollectionID int64
	Term         string
	Definition   string
	Format       string // FormatHTML, FormatMarkdown or FormatPlain
	Approved     bool
	CreatedAt    int64
}

// Hit is one row of a search page: the entry plus the name of its collection.
type Hit struct {
	ID             int64  `json:"id"`
	Term           string `json:"term"`
	Definition     string `json:"definition"`
	Format         string `json:"format"`
	CollectionID   int64  `json:"collection_id"`
	CollectionName string `json:"collection"`
}

// EntryJSON is the API-friendly representation of an Entry.
type EntryJSON struct {
	ID           int64    `json:"id"`
	CollectionID int64    `json:"collection_id"`
	Term         string   `json:"term"`
	Definition   string   `json:"definition"`
	Format       string   `json:"format"`
	Approved     bool     `json:"approved"`
	Aliases      []string `json:"aliases,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

// ToJSON converts an Entry to its API representation with an RFC3339 timestamp.
func (e *Entry) ToJSON(aliases []string) EntryJSON {
	return EntryJSON{
		ID:           e.ID,
		CollectionID: e.CollectionID,
		Term:         e.Term,
		Definition:   e.Definition,
		Format:       e.Format,
		Approved:     e.Approved,
		Aliases:      aliases,
		CreatedAt:    time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// CollectionFilter selects collections for the selector. A non-zero
// OwnerScopeID wins over ID; both zero lists everything.
type CollectionFilter struct {
	OwnerScopeID int64
	ID           int64
}

// Stats summarises the store's contents.
type Stats struct {
	Collections int64 `json:"collections"`
	Entries     int64 `json:"entries"`
	Approved    int64 `json:"approved"`
	Aliases     int64 `json:"aliases"`
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// NormaliseFormat maps user input to a known definition format.
func NormaliseFormat(f string) string {
	switch f {
	case FormatMarkdown, "md":
		return FormatMarkdown
	case FormatPlain, "text", "txt":
		return FormatPlain
	default:
		return FormatHTML
	}
}
