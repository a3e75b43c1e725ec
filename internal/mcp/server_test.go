package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/repo"
	"github.com/jpl-au/glossd/internal/search"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupHandlers opens a fresh glossary with one collection and two entries.
func setupHandlers(t *testing.T) (*handlers, int64) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir := t.TempDir()
	require.NoError(t, glossary.Init(false, "", false, dir))
	opts := glossary.Options{Dir: filepath.Join(dir, repo.Dir)}
	svc, err := glossary.New(opts)
	require.NoError(t, err)

	h := newHandlers(svc, opts)
	t.Cleanup(h.close)

	ctx := context.Background()
	cid, err := svc.AddCollection(ctx, 9, "Biology")
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, store.Entry{CollectionID: cid, Term: "Cat", Definition: "A small <b>cat</b>.", Approved: true}, []string{"feline"})
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, store.Entry{CollectionID: cid, Term: "Catalyst", Definition: "Speeds reactions.", Approved: true}, nil)
	require.NoError(t, err)
	return h, cid
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestSearchTool(t *testing.T) {
	h, _ := setupHandlers(t)
	ctx := context.Background()

	res, err := h.searchGlossary(ctx, call(map[string]any{"query": "cat", "whole_word": true}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var out search.Result
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Cat", out.Items[0].Term)
	assert.Equal(t, "A small cat.", out.Items[0].Definition)
	assert.Contains(t, out.Items[0].DefinitionHTML, "<b><mark>cat</mark></b>")

	// Aliases are searched too.
	res, err = h.searchGlossary(ctx, call(map[string]any{"query": "feline", "course": float64(9)}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, search.ScopeOwner, out.Scope.Kind)
}

func TestSearchTool_Errors(t *testing.T) {
	h, _ := setupHandlers(t)
	ctx := context.Background()

	res, err := h.searchGlossary(ctx, call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.searchGlossary(ctx, call(map[string]any{"query": "   "}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "query is empty", text(t, res))
}

func TestUninitialised(t *testing.T) {
	h := &handlers{}
	res, err := h.searchGlossary(context.Background(), call(map[string]any{"query": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, ErrNotInitialised, text(t, res))

	_, err = h.readEntry(context.Background(), mcp.ReadResourceRequest{})
	assert.EqualError(t, err, ErrNotInitialised)
}

func TestInitTool(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	h := &handlers{}
	t.Cleanup(h.close)
	res, err := h.initStore(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, "glossary initialised", text(t, res))
	require.NotNil(t, h.svc)

	res, err = h.initStore(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestCollectionsTool(t *testing.T) {
	h, cid := setupHandlers(t)

	res, err := h.collections(context.Background(), call(map[string]any{"course": "9"}))
	require.NoError(t, err)

	var colls []store.Collection
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &colls))
	require.Len(t, colls, 1)
	assert.Equal(t, cid, colls[0].ID)
	assert.Equal(t, int64(2), colls[0].Entries)

	res, err = h.collections(context.Background(), call(map[string]any{"course": 10}))
	require.NoError(t, err)
	assert.Equal(t, "[]", text(t, res))
}

func TestAddTools(t *testing.T) {
	h, _ := setupHandlers(t)
	ctx := context.Background()

	res, err := h.addCollection(ctx, call(map[string]any{"name": "Physics", "course": 9}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	var created struct{ ID int64 }
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &created))

	res, err = h.addCollection(ctx, call(map[string]any{"name": "Physics", "course": 9}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.addEntry(ctx, call(map[string]any{
		"collection": float64(created.ID),
		"term":       "Force",
		"definition": "A *push* or pull.",
		"format":     "markdown",
		"aliases":    []any{"push", 3},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	res, err = h.searchGlossary(ctx, call(map[string]any{"query": "push", "collection": float64(created.ID)}))
	require.NoError(t, err)
	var out search.Result
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	require.Len(t, out.Items, 1)
	assert.Contains(t, out.Items[0].DefinitionHTML, "<em><mark>push</mark></em>")

	res, err = h.addEntry(ctx, call(map[string]any{"term": "x", "definition": "y"}))
	require.NoError(t, err)
	assert.Equal(t, "collection is required", text(t, res))
}

func TestPendingEntryNotSearchable(t *testing.T) {
	h, cid := setupHandlers(t)
	ctx := context.Background()

	res, err := h.addEntry(ctx, call(map[string]any{"collection": cid, "term": "Zebra", "definition": "Striped.", "pending": true}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	res, err = h.searchGlossary(ctx, call(map[string]any{"query": "zebra"}))
	require.NoError(t, err)
	var out search.Result
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Zero(t, out.Total)
}

func TestImportTool(t *testing.T) {
	h, _ := setupHandlers(t)
	src := filepath.Join(t.TempDir(), "g.yaml")
	require.NoError(t, os.WriteFile(src, []byte("entries:\n  - term: Mitosis\n"), 0644))

	res, err := h.importFiles(context.Background(), call(map[string]any{"path": src, "collection": "Cells", "dry_run": true}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), `"dry_run": true`)

	res, err = h.importFiles(context.Background(), call(map[string]any{"path": src}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestExportTool(t *testing.T) {
	h, cid := setupHandlers(t)
	ctx := context.Background()

	res, err := h.exportFiles(ctx, call(map[string]any{"collection": float64(cid)}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), "name: Biology")
	assert.Contains(t, text(t, res), "- feline")

	dst := filepath.Join(t.TempDir(), "out.json")
	res, err = h.exportFiles(ctx, call(map[string]any{"path": dst}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), `"entries": 2`)
	assert.FileExists(t, dst)

	// The file now exists; without force the export refuses.
	res, err = h.exportFiles(ctx, call(map[string]any{"path": dst}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.exportFiles(ctx, call(map[string]any{"course": float64(404)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestEntryToolAndResources(t *testing.T) {
	h, cid := setupHandlers(t)
	ctx := context.Background()

	res, err := h.entry(ctx, call(map[string]any{"id": 1}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), `"feline"`)

	var req mcp.ReadResourceRequest
	req.Params.URI = "glossd://entries/1"
	contents, err := h.readEntry(ctx, req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, `"term": "Cat"`)

	req.Params.URI = collectionURIPrefix + strconv.FormatInt(cid, 10)
	contents, err = h.readCollection(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, `"name": "Biology"`)

	req.Params.URI = "glossd://entries/abc"
	_, err = h.readEntry(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidURI)

	req.Params.URI = "glossd://entries/99"
	_, err = h.readEntry(ctx, req)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStatsTool(t *testing.T) {
	h, _ := setupHandlers(t)
	res, err := h.stats(context.Background(), call(nil))
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, `"strategy": "lookaround"`)
	assert.Contains(t, out, `"entries": 2`)
}

func TestParseID(t *testing.T) {
	id, err := parseID("glossd://entries/42", entryURIPrefix)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID("other://entries/42", entryURIPrefix)
	assert.ErrorIs(t, err, ErrInvalidURI)
	_, err = parseID("glossd://entries/0", entryURIPrefix)
	assert.ErrorIs(t, err, ErrInvalidURI)
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer(&handlers{}))
}
