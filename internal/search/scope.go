package search

import (
	"fmt"

	"github.com/jpl-au/glossd/internal/query"
	"github.com/jpl-au/glossd/internal/store"
)

// ScopeKind says what a search is restricted to.
type ScopeKind string

const (
	ScopeAll        ScopeKind = "all"
	ScopeCollection ScopeKind = "collection"
	ScopeOwner      ScopeKind = "owner"
)

// Scope is the resolved restriction of one search.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	ID   int64     `json:"id,omitempty"`
}

// ResolveScope applies the precedence explicit collection > owner scope >
// pinned collection > everything. Non-positive ids count as unset.
func ResolveScope(selected, ownerScope, pinned int64) Scope {
	switch {
	case selected > 0:
		return Scope{Kind: ScopeCollection, ID: selected}
	case ownerScope > 0:
		return Scope{Kind: ScopeOwner, ID: ownerScope}
	case pinned > 0:
		return Scope{Kind: ScopeCollection, ID: pinned}
	default:
		return Scope{Kind: ScopeAll}
	}
}

// Predicate returns the SQL filter for the scope.
func (s Scope) Predicate() query.Predicate {
	switch s.Kind {
	case ScopeCollection:
		return store.InCollection(s.ID)
	case ScopeOwner:
		return store.InOwnerScope(s.ID)
	default:
		return query.Predicate{SQL: query.Neutral}
	}
}

func (s Scope) String() string {
	if s.Kind == ScopeAll || s.Kind == "" {
		return string(ScopeAll)
	}
	return fmt.Sprintf("%s:%d", s.Kind, s.ID)
}
