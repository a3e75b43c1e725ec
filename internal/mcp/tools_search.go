// tools_search.go implements the read-only glossary tools: search,
// collection listing, entry lookup and stats.
//
// Search results carry both the plain definition and the highlighted HTML
// so an LLM can quote either.

package mcp

import (
	"context"
	"errors"

	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/search"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// searchGlossary handles glossd_search tool calls.
func (h *handlers) searchGlossary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	q, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	sr := search.Request{
		Query:        q,
		WholeWord:    getBool(req, "whole_word", false),
		Page:         getInt(req, "page", 0),
		CollectionID: getID(req, "collection"),
		OwnerScopeID: getID(req, "course"),
	}
	res, err := h.svc.Search(ctx, sr)

	b := log.Event("mcp:glossd_search", "search").Author("mcp").Query(sr.Query).Collection(sr.CollectionID)
	if res != nil {
		b = b.Count(res.Total).Detail("scope", res.Scope.String())
	}
	b.Write(err)

	if err != nil {
		if errors.Is(err, search.ErrStore) {
			return mcp.NewToolResultError(search.ErrStore.Error()), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	if res.Help {
		return mcp.NewToolResultError("query is empty"), nil
	}

	return jsonResult(res)
}

// collections handles glossd_collections tool calls.
func (h *handlers) collections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	course := getID(req, "course")
	colls, err := h.svc.Collections(ctx, course)

	log.Event("mcp:glossd_collections", "list").Author("mcp").Detail("course", course).Count(int64(len(colls))).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if colls == nil {
		colls = []store.Collection{}
	}
	return jsonResult(colls)
}

// entry handles glossd_entry tool calls.
func (h *handlers) entry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	id := getID(req, "id")
	if id == 0 {
		return mcp.NewToolResultError("id is required"), nil
	}

	e, err := h.svc.Entry(ctx, id)

	log.Event("mcp:glossd_entry", "read").Author("mcp").EntryID(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e)
}

// stats handles glossd_stats tool calls.
func (h *handlers) stats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	st, err := h.svc.Stats(ctx)

	log.Event("mcp:glossd_stats", "stats").Author("mcp").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"location": h.svc.Location(),
		"driver":   h.svc.Dialect(),
		"strategy": h.svc.Strategy(),
		"per_page": h.svc.PerPage(),
		"counts":   st,
	})
}
