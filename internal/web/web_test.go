package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/glossd/internal/config"
	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/repo"
	"github.com/jpl-au/glossd/internal/search"
	"github.com/jpl-au/glossd/internal/service"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService opens a glossary with two collections under course 5.
func setupService(t *testing.T) (service.Service, int64, int64) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir := t.TempDir()
	require.NoError(t, glossary.Init(false, "", false, dir))
	svc, err := glossary.New(glossary.Options{Dir: filepath.Join(dir, repo.Dir)})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	ctx := context.Background()
	bio, err := svc.AddCollection(ctx, 5, "Biology")
	require.NoError(t, err)
	chem, err := svc.AddCollection(ctx, 5, "Chemistry")
	require.NoError(t, err)

	_, err = svc.AddEntry(ctx, store.Entry{CollectionID: bio, Term: "Cat", Definition: "A small <em>cat</em>.", Approved: true}, nil)
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, store.Entry{CollectionID: chem, Term: "Catalyst", Definition: "Speeds reactions.", Approved: true}, nil)
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, store.Entry{CollectionID: bio, Term: "Caterpillar", Definition: "Pending review.", Approved: false}, nil)
	require.NoError(t, err)
	return svc, bio, chem
}

func get(t *testing.T, h http.Handler, rawQuery string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestHandler_HelpPrompt(t *testing.T) {
	svc, _, _ := setupService(t)
	h := NewHandler(svc, Options{Title: "Course glossary"})

	code, body := get(t, h, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<h2>Course glossary</h2>")
	assert.Contains(t, body, "Type a word or phrase and press Search.")
	assert.NotContains(t, body, `<ul class="glossarysearch-results">`)

	// Whitespace only is the same as no query.
	_, body = get(t, h, "gs_q=%20%20")
	assert.Contains(t, body, "Type a word or phrase and press Search.")
}

func TestHandler_Results(t *testing.T) {
	svc, _, _ := setupService(t)
	h := NewHandler(svc, Options{})

	code, body := get(t, h, "gs_q=cat")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<strong><mark>Cat</mark></strong>")
	assert.Contains(t, body, "<strong><mark>Cat</mark>alyst</strong>")
	assert.Contains(t, body, "<em><mark>cat</mark></em>")
	assert.Contains(t, body, `<div class="glossarysearch-meta">Chemistry</div>`)
	assert.NotContains(t, body, "Caterpillar", "unapproved entries are hidden")
	assert.Contains(t, body, `value="cat"`, "query is echoed in the form")

	_, body = get(t, h, "gs_q=cat&gs_wholeword=1")
	assert.Contains(t, body, "<strong><mark>Cat</mark></strong>")
	assert.NotContains(t, body, "Catalyst")
	assert.Contains(t, body, `id="id_gs_wholeword" checked`)
}

func TestHandler_NoResults(t *testing.T) {
	svc, _, _ := setupService(t)
	h := NewHandler(svc, Options{})

	code, body := get(t, h, "gs_q=zebra")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "No entries matched your search.")
	assert.NotContains(t, body, "<nav")
}

func TestHandler_EscapesQuery(t *testing.T) {
	svc, _, _ := setupService(t)
	h := NewHandler(svc, Options{})

	_, body := get(t, h, "gs_q="+url.QueryEscape(`"><script>alert(1)</script>`))
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "No entries matched your search.")
}

func TestHandler_Selector(t *testing.T) {
	svc, bio, chem := setupService(t)
	h := NewHandler(svc, Options{})

	_, body := get(t, h, fmt.Sprintf("course=5&gs_gid=%d&gs_q=cat", chem))
	assert.Contains(t, body, `<select name="gs_gid"`)
	assert.Contains(t, body, `<option value="0">All course glossaries</option>`)
	assert.Contains(t, body, fmt.Sprintf(`<option value="%d">Biology</option>`, bio))
	assert.Contains(t, body, fmt.Sprintf(`<option value="%d" selected>Chemistry</option>`, chem))
	assert.Contains(t, body, `<input type="hidden" name="course" value="5">`)

	// The selected collection narrows the results.
	assert.Contains(t, body, "<mark>Cat</mark>alyst")
	assert.NotContains(t, body, "<strong><mark>Cat</mark></strong>")

	// A course with no collections hides the selector.
	_, body = get(t, h, "course=77&gs_q=cat")
	assert.NotContains(t, body, "<select")
	assert.Contains(t, body, "No entries matched your search.")
}

func TestHandler_CoercesBadNumbers(t *testing.T) {
	svc, _, _ := setupService(t)
	h := NewHandler(svc, Options{})

	code, body := get(t, h, "gs_q=cat&gs_page=abc&gs_gid=x&course=-3")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<mark>Cat</mark>alyst")
	assert.NotContains(t, body, `name="course"`)
}

func TestHandler_PastLastPage(t *testing.T) {
	svc, _, _ := setupService(t)
	h := NewHandler(svc, Options{})

	code, body := get(t, h, "gs_q=cat&gs_page=9223372036854775807")
	assert.Equal(t, http.StatusOK, code)
	assert.NotContains(t, body, "<mark>Cat</mark>alyst")
	assert.NotContains(t, body, `rel="next"`)
}

func TestHandler_Paging(t *testing.T) {
	svc, bio, _ := setupService(t)
	ctx := context.Background()
	for i := 1; i <= 12; i++ {
		_, err := svc.AddEntry(ctx, store.Entry{
			CollectionID: bio,
			Term:         fmt.Sprintf("Membrane %02d", i),
			Definition:   "Part of a cell.",
			Approved:     true,
		}, nil)
		require.NoError(t, err)
	}
	h := NewHandler(svc, Options{})

	_, body := get(t, h, "gs_q=membrane")
	assert.Equal(t, 10, strings.Count(body, "<li>"))
	assert.Contains(t, body, `<span aria-current="page">1</span>`)
	assert.Contains(t, body, `href="/?gs_page=1&amp;gs_q=membrane" rel="next"`)
	assert.NotContains(t, body, `rel="prev"`)

	_, body = get(t, h, "gs_q=membrane&gs_page=1")
	assert.Equal(t, 2, strings.Count(body, "<li>"))
	assert.Contains(t, body, "<mark>Membrane</mark> 11")
	assert.Contains(t, body, `href="/?gs_q=membrane" rel="prev"`)
	assert.NotContains(t, body, `rel="next"`)

	// Past the last page: nothing listed, but the bar leads back.
	_, body = get(t, h, "gs_q=membrane&gs_page=9")
	assert.Contains(t, body, "No entries matched your search.")
	assert.Contains(t, body, `href="/?gs_page=1&amp;gs_q=membrane" rel="prev"`)
}

// brokenService fails every search, as an unreachable database would.
type brokenService struct {
	service.Service
}

func (brokenService) Collections(context.Context, int64) ([]store.Collection, error) {
	return nil, nil
}

func (brokenService) Search(context.Context, search.Request) (*search.Result, error) {
	return nil, fmt.Errorf("%w: %w", search.ErrStore, errors.New("database is locked"))
}

func TestHandler_StoreFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	h := NewHandler(brokenService{}, Options{})

	code, body := get(t, h, "gs_q=cat")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body, "The glossary search is unavailable right now.")
	assert.NotContains(t, body, "database is locked")
	assert.Contains(t, body, `value="cat"`, "form still renders")
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(brokenService{}, Options{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestHandler_Colours(t *testing.T) {
	svc, _, _ := setupService(t)
	cfg := &config.Config{Display: config.Display{HighlightBg: "#abcdef"}}
	h := NewHandler(svc, Options{Colours: cfg.Colours()})

	_, body := get(t, h, "")
	assert.Contains(t, body, "background: #abcdef;")
	assert.Contains(t, body, "color: "+config.DefaultPrimaryColor+";")
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  search.Request
	}{
		{"empty", "", search.Request{}},
		{"trimmed", "gs_q=+osmosis+", search.Request{Query: "osmosis"}},
		{"all fields", "gs_q=cell&gs_page=2&gs_wholeword=1&gs_gid=4&course=9",
			search.Request{Query: "cell", Page: 2, WholeWord: true, CollectionID: 4, OwnerScopeID: 9}},
		{"non-numeric", "gs_page=two&gs_gid=four&course=x", search.Request{}},
		{"bool words", "gs_wholeword=on", search.Request{WholeWord: true}},
		{"bool zero", "gs_wholeword=0", search.Request{}},
		{"negative page", "gs_page=-1", search.Request{}},
		{"huge page", "gs_page=9223372036854775807", search.Request{Page: search.MaxPage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParseRequest(v))
		})
	}
}

func TestValues(t *testing.T) {
	req := search.Request{Query: "cell wall", Page: 3, WholeWord: true, CollectionID: 4, OwnerScopeID: 9}
	assert.Equal(t, req, ParseRequest(Values(req)))
	assert.Equal(t, "gs_q=cell", Values(search.Request{Query: "cell"}).Encode())
}

func TestWindow(t *testing.T) {
	tests := []struct {
		current, pages      int
		wantFirst, wantLast int
	}{
		{0, 3, 0, 2},
		{0, 30, 0, 9},
		{15, 30, 10, 19},
		{29, 30, 20, 29},
		{50, 30, 20, 29},
	}
	for _, tt := range tests {
		first, last := window(tt.current, tt.pages, maxDisplay)
		assert.Equal(t, tt.wantFirst, first, "current=%d pages=%d", tt.current, tt.pages)
		assert.Equal(t, tt.wantLast, last, "current=%d pages=%d", tt.current, tt.pages)
	}
}

func TestNewPagingBar_Gaps(t *testing.T) {
	res := &search.Result{Page: 15, PerPage: 10, Total: 300}
	bar := newPagingBar("/", search.Request{Query: "x", Page: 15}, res)
	require.NotNil(t, bar)

	labels := make([]string, 0, len(bar.Pages))
	for _, p := range bar.Pages {
		if p.Gap {
			labels = append(labels, "…")
			continue
		}
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"1", "…", "11", "12", "13", "14", "15", "16", "17", "18", "19", "20", "…", "30"}, labels)
	assert.Nil(t, newPagingBar("/", search.Request{}, &search.Result{PerPage: 10, Total: 4}))
}

func TestRoutes(t *testing.T) {
	svc, _, _ := setupService(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := Routes(svc, ServerOptions{CORSOrigins: []string{"https://lms.example.org"}}, logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/?gs_q=cat", nil)
	req.Header.Set("Origin", "https://lms.example.org")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://lms.example.org", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	logger := logrus.New()
	var buf strings.Builder
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	h := requestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodGet, "/?gs_q=cat", nil)
	req.Header.Set("X-Forwarded-For", " , 10.0.0.7, 10.0.0.8")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"client_ip":"10.0.0.7"`)
	assert.Contains(t, out, `"query":"gs_q=cat"`)
	assert.Contains(t, out, `"level":"warning"`)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger, err = NewLogger("info", "text")
	require.NoError(t, err)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	_, err = NewLogger("loud", "text")
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{Web: config.Web{CORSOrigins: "https://a.example, https://b.example", Title: "Terms"}}
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, config.DefaultAddr, opts.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, opts.CORSOrigins)
	assert.Equal(t, "Terms", opts.Widget.Title)
	assert.Equal(t, config.DefaultHighlightBg, opts.Widget.Colours.HighlightBg)
}
