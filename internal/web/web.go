// Package web serves the glossary search widget over HTTP.
//
// The widget is a single GET form: a query box, an optional collection
// selector, a whole-word checkbox, then either a help prompt, a no-results
// notice or a highlighted result list with a paging bar. All state lives in
// the URL (see ParseRequest), so result pages can be bookmarked and linked.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/jpl-au/glossd/internal/config"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/search"
	"github.com/jpl-au/glossd/internal/service"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/samber/lo"
)

//go:embed templates/*.html
var templates embed.FS

var widget = template.Must(template.ParseFS(templates, "templates/widget.html"))

// allCollections labels the selector entry that searches every collection
// in scope.
const allCollections = "All course glossaries"

// Options configure the widget's presentation.
type Options struct {
	Title   string
	Colours config.Display
}

// Handler renders the search widget.
type Handler struct {
	svc  service.Service
	opts Options
}

// NewHandler returns a Handler searching svc.
func NewHandler(svc service.Service, opts Options) *Handler {
	if opts.Title == "" {
		opts.Title = config.DefaultTitle
	}
	return &Handler{svc: svc, opts: opts}
}

type option struct {
	ID       int64
	Name     string
	Selected bool
}

type item struct {
	Term       template.HTML
	Definition template.HTML
	Collection string
}

type view struct {
	Title   string
	Colours config.Display
	Action  string

	Query     string
	WholeWord bool
	Course    int64
	Options   []option

	Help   bool
	Failed bool
	Items  []item
	Paging *pagingBar
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req := ParseRequest(r.URL.Query())
	v := &view{
		Title:     h.opts.Title,
		Colours:   h.opts.Colours,
		Action:    r.URL.Path,
		Query:     req.Query,
		WholeWord: req.WholeWord,
		Course:    max(req.OwnerScopeID, 0),
	}

	status, err := h.populate(r, req, v)
	if err != nil {
		log.Event("web:search", "search").
			Author("web").
			Query(req.Query).
			Detail("remote", r.RemoteAddr).
			Write(err)
	}

	var buf bytes.Buffer
	if err := widget.Execute(&buf, v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// populate fills v from the store. A store failure marks the view as failed
// and returns 500 with the error for logging; the page still renders.
func (h *Handler) populate(r *http.Request, req search.Request, v *view) (int, error) {
	ctx := r.Context()

	colls, err := h.svc.Collections(ctx, req.OwnerScopeID)
	if err != nil {
		v.Failed = true
		return http.StatusInternalServerError, err
	}
	v.Options = selectorOptions(colls, req.CollectionID)

	res, err := h.svc.Search(ctx, req)
	if err != nil {
		v.Failed = true
		return http.StatusInternalServerError, err
	}
	if res.Help {
		v.Help = true
		return http.StatusOK, nil
	}

	v.Items = lo.Map(res.Items, func(it search.Item, _ int) item {
		return item{
			Term:       template.HTML(it.TermHTML),
			Definition: template.HTML(it.DefinitionHTML),
			Collection: it.CollectionName,
		}
	})
	v.Paging = newPagingBar(r.URL.Path, req, res)

	b := log.Event("web:search", "search").
		Author("web").
		Query(res.Query).
		Count(res.Total).
		Detail("scope", res.Scope.String()).
		Detail("page", res.Page)
	if res.Scope.Kind == search.ScopeCollection {
		b.Collection(res.Scope.ID)
	}
	b.Write(nil)
	return http.StatusOK, nil
}

// selectorOptions builds the collection selector. It is empty when there is
// nothing to choose from, which hides the selector.
func selectorOptions(colls []store.Collection, selected int64) []option {
	if len(colls) == 0 {
		return nil
	}
	opts := []option{{ID: 0, Name: allCollections, Selected: selected <= 0}}
	return append(opts, lo.Map(colls, func(c store.Collection, _ int) option {
		return option{ID: c.ID, Name: c.Name, Selected: c.ID == selected}
	})...)
}

