// Package search runs a glossary search: it resolves the scope, builds the
// predicate, counts and fetches one page, then renders and highlights each
// hit. It depends only on store.Reader and holds no per-request state.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/glossd/internal/highlight"
	"github.com/jpl-au/glossd/internal/query"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/jpl-au/glossd/internal/validate"
)

// DefaultPerPage matches the page size of the original widget.
const DefaultPerPage = 10

// MaxPage caps requested page numbers. Larger requests are treated as this
// page, which is past the end of any realistic result set.
const MaxPage = 1 << 20

// ErrStore marks failures of the underlying store, so presentation layers
// can show a generic notice instead of the database message.
var ErrStore = errors.New("glossary store unavailable")

// Request is one search as submitted by a user. Zero values mean "unset".
type Request struct {
	Query        string `json:"query"`
	WholeWord    bool   `json:"whole_word"`
	Page         int    `json:"page"`
	CollectionID int64  `json:"collection,omitempty"`
	OwnerScopeID int64  `json:"course,omitempty"`
}

// Options configure a Service.
type Options struct {
	PerPage int
	// Aliases extends matching to entry keyword aliases.
	Aliases bool
	// PinnedCollectionID is the collection preconfigured for this instance.
	PinnedCollectionID int64
}

// Item is one rendered search hit.
type Item struct {
	ID             int64  `json:"id"`
	Term           string `json:"term"`
	Definition     string `json:"definition"`
	TermHTML       string `json:"term_html"`
	DefinitionHTML string `json:"definition_html"`
	CollectionID   int64  `json:"collection_id"`
	CollectionName string `json:"collection"`
}

// Result is the outcome of a search.
type Result struct {
	Query     string `json:"query"`
	WholeWord bool   `json:"whole_word"`
	Scope     Scope  `json:"scope"`
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
	Total     int64  `json:"total"`
	Items     []Item `json:"items"`
	// Help is set when no query was given; nothing was searched.
	Help bool `json:"help,omitempty"`
}

// Pages returns the number of pages needed for Total.
func (r *Result) Pages() int {
	if r.PerPage <= 0 || r.Total == 0 {
		return 0
	}
	return int((r.Total + int64(r.PerPage) - 1) / int64(r.PerPage))
}

// HasPrev reports whether a previous page exists.
func (r *Result) HasPrev() bool { return r.Page > 0 && r.Total > 0 }

// HasNext reports whether a following page exists.
func (r *Result) HasNext() bool { return r.Page < r.Pages()-1 }

// NoResults reports that a query ran and nothing matched.
func (r *Result) NoResults() bool { return !r.Help && r.Total == 0 }

// Service executes searches against a store.
type Service struct {
	r       store.Reader
	builder *query.Builder
	opts    Options
}

// New returns a Service reading from r and matching whole words with m.
func New(r store.Reader, m query.WholeWordMatcher, opts Options) *Service {
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	return &Service{r: r, builder: query.NewBuilder(m), opts: opts}
}

// Strategy reports the whole-word strategy in use.
func (s *Service) Strategy() query.Strategy {
	return s.builder.Matcher().Strategy()
}

// PerPage reports the configured page size.
func (s *Service) PerPage() int {
	return s.opts.PerPage
}

// Predicate returns the full filter for req, including approval and scope.
func (s *Service) Predicate(req Request) query.Predicate {
	q := validate.Query(req.Query)
	match := s.builder.Build(q, req.WholeWord, store.ColTerm, store.ColDefinition)
	if s.opts.Aliases && !match.IsNeutral() {
		match = query.Or(match, store.AliasMatch(s.builder.Build(q, req.WholeWord, store.ColAlias)))
	}
	scope := ResolveScope(req.CollectionID, req.OwnerScopeID, s.opts.PinnedCollectionID)
	return query.And(match, store.Approved(), scope.Predicate())
}

// Search runs req. An empty query returns a help result without touching the
// store. A page past the last returns no items but keeps Total. Store errors
// wrap ErrStore.
func (s *Service) Search(ctx context.Context, req Request) (*Result, error) {
	q := validate.Query(req.Query)
	page := min(max(req.Page, 0), MaxPage)

	res := &Result{
		Query:     q,
		WholeWord: req.WholeWord,
		Scope:     ResolveScope(req.CollectionID, req.OwnerScopeID, s.opts.PinnedCollectionID),
		Page:      page,
		PerPage:   s.opts.PerPage,
		Items:     []Item{},
	}
	if q == "" {
		res.Help = true
		return res, nil
	}

	pred := s.Predicate(req)
	total, err := s.r.CountMatching(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	res.Total = total
	if page >= res.Pages() {
		return res, nil
	}

	hits, err := s.r.FetchPage(ctx, pred, page*s.opts.PerPage, s.opts.PerPage)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	h := highlight.New(q, req.WholeWord)
	for _, hit := range hits {
		def := RenderDefinition(hit.Definition, hit.Format)
		res.Items = append(res.Items, Item{
			ID:             hit.ID,
			Term:           hit.Term,
			Definition:     PlainText(def),
			TermHTML:       h.MarkHTML(RenderTerm(hit.Term)),
			DefinitionHTML: h.MarkHTML(def),
			CollectionID:   hit.CollectionID,
			CollectionName: hit.CollectionName,
		})
	}
	return res, nil
}

// Collections lists collections for the selector: those of the owner scope
// when one is given, otherwise the pinned collection, otherwise all.
func (s *Service) Collections(ctx context.Context, ownerScopeID int64) ([]store.Collection, error) {
	f := store.CollectionFilter{OwnerScopeID: ownerScopeID}
	if ownerScopeID <= 0 {
		f = store.CollectionFilter{ID: s.opts.PinnedCollectionID}
	}
	list, err := s.r.ListCollections(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return list, nil
}
