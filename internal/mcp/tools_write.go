// tools_write.go implements the MCP tools that add glossary content:
// collections, single entries and file imports. Export lives here too as
// the inverse of import.

package mcp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jpl-au/glossd/internal/exporter"
	"github.com/jpl-au/glossd/internal/importer"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// addCollection handles glossd_add_collection tool calls.
func (h *handlers) addCollection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}
	course := getID(req, "course")

	id, err := h.svc.AddCollection(ctx, course, name)

	log.Event("mcp:glossd_add_collection", "add").Author("mcp").Collection(id).Detail("name", name).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"id": id, "name": name, "owner_scope_id": course})
}

// addEntry handles glossd_add_entry tool calls.
func (h *handlers) addEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	coll := getID(req, "collection")
	if coll == 0 {
		return mcp.NewToolResultError("collection is required"), nil
	}
	term, err := req.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError("term is required"), nil //nolint:nilerr
	}
	def, err := req.RequireString("definition")
	if err != nil {
		return mcp.NewToolResultError("definition is required"), nil //nolint:nilerr
	}

	e := store.Entry{
		CollectionID: coll,
		Term:         term,
		Definition:   def,
		Format:       getString(req, "format", store.FormatHTML),
		Approved:     !getBool(req, "pending", false),
	}
	id, err := h.svc.AddEntry(ctx, e, getStrings(req, "aliases"))

	log.Event("mcp:glossd_add_entry", "add").Author("mcp").Collection(coll).EntryID(id).Detail("term", term).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added entry %d (%s)", id, term)), nil
}

// importFiles handles glossd_import tool calls.
func (h *handlers) importFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	opts := importer.Options{
		Owner:      getID(req, "course"),
		Collection: getString(req, "collection", ""),
		DryRun:     getBool(req, "dry_run", false),
	}

	var buf bytes.Buffer
	result, err := h.svc.Import(ctx, &buf, path, opts)

	log.Event("mcp:glossd_import", "import").Author("mcp").Detail("source", path).Count(int64(result.Entries)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// exportFiles handles glossd_export tool calls. Without a path the YAML
// document is returned in the result.
func (h *handlers) exportFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	dst := getString(req, "path", exporter.Stdout)
	opts := exporter.Options{
		Owner:        getID(req, "course"),
		CollectionID: getID(req, "collection"),
		Force:        getBool(req, "force", false),
	}

	var buf bytes.Buffer
	result, err := h.svc.Export(ctx, &buf, dst, opts)

	log.Event("mcp:glossd_export", "export").Author("mcp").Collection(opts.CollectionID).Count(int64(result.Entries)).Detail("destination", dst).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if dst == exporter.Stdout {
		return mcp.NewToolResultText(buf.String()), nil
	}
	return jsonResult(result)
}
