// Package mcp implements the Model Context Protocol server, exposing glossd
// search to LLMs. Assistants can look terms up, browse collections and
// author entries through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/repo"
	"github.com/jpl-au/glossd/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when no glossary database exists.
const ErrNotInitialised = "glossary not initialised - call glossd_init first"

// Serve starts the MCP server over stdio.
//
// The server starts even if no database exists so that an LLM can call
// glossd_init; every other tool answers with ErrNotInitialised until then.
func Serve(opts glossary.Options) error {
	// stdout carries JSON-RPC.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{opts: opts}

	svc, err := glossary.New(opts)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open glossary", "error", err)
		return err
	}
	if err == nil {
		h.svc = svc
		slog.Info("glossary opened", "location", svc.Location(), "strategy", svc.Strategy())
	} else {
		slog.Info("glossd not initialised, starting in uninitialised mode - call glossd_init to create a glossary")
	}
	defer h.close()

	s := NewServer(h)
	slog.Info("glossd MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every resource and tool registered.
func NewServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"glossd",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// handlers provides MCP request handlers with access to the glossary.
// svc is nil until a database exists.
type handlers struct {
	opts glossary.Options
	svc  service.Service
}

// newHandlers wraps an open service; used by tests and embedders.
func newHandlers(svc service.Service, opts glossary.Options) *handlers {
	return &handlers{opts: opts, svc: svc}
}

// requireInit returns an error result if no glossary is open.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// reopen replaces the service so config changes take effect.
func (h *handlers) reopen() error {
	svc, err := glossary.New(h.opts)
	if err != nil {
		return err
	}
	h.close()
	h.svc = svc
	return nil
}

func (h *handlers) close() {
	if h.svc != nil {
		if err := h.svc.Close(); err != nil {
			slog.Warn("closing glossary", "error", err)
		}
		h.svc = nil
	}
}

// registerResources adds URI-based read access to entries and collections.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			entryURIPrefix+"{id}",
			"Glossary entry",
			mcp.WithTemplateDescription("Read one glossary entry with its aliases"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readEntry,
	)
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			collectionURIPrefix+"{id}",
			"Glossary collection",
			mcp.WithTemplateDescription("Read one collection and its approved entry count"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readCollection,
	)
}

// registerTools exposes glossd operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("glossd_init",
			mcp.WithDescription("Initialise a new glossary database. Call this first if other tools return 'glossary not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, database is gitignored (not committed to version control)")),
		),
		h.initStore,
	)

	s.AddTool(
		mcp.NewTool("glossd_search",
			mcp.WithDescription("Search glossary terms, definitions and keyword aliases for a literal phrase. Results are paged and ordered by term."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Phrase to find (matched literally, case-insensitive)")),
			mcp.WithBoolean("whole_word", mcp.Description("Only match the phrase as a whole word")),
			mcp.WithNumber("collection", mcp.Description("Restrict to this collection id")),
			mcp.WithNumber("course", mcp.Description("Restrict to collections of this owner scope (course)")),
			mcp.WithNumber("page", mcp.Description("Zero-based page number")),
		),
		h.searchGlossary,
	)

	s.AddTool(
		mcp.NewTool("glossd_collections",
			mcp.WithDescription("List glossary collections with their approved entry counts"),
			mcp.WithNumber("course", mcp.Description("Only collections of this owner scope (course)")),
		),
		h.collections,
	)

	s.AddTool(
		mcp.NewTool("glossd_entry",
			mcp.WithDescription("Read one glossary entry by id, including its raw definition and aliases"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Entry id from glossd_search")),
		),
		h.entry,
	)

	s.AddTool(
		mcp.NewTool("glossd_add_collection",
			mcp.WithDescription("Create a glossary collection"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Collection name, unique within the course")),
			mcp.WithNumber("course", mcp.Description("Owner scope (course) id")),
		),
		h.addCollection,
	)

	s.AddTool(
		mcp.NewTool("glossd_add_entry",
			mcp.WithDescription("Add a term and definition to a collection"),
			mcp.WithNumber("collection", mcp.Required(), mcp.Description("Collection id")),
			mcp.WithString("term", mcp.Required(), mcp.Description("The term being defined")),
			mcp.WithString("definition", mcp.Required(), mcp.Description("The definition")),
			mcp.WithString("format", mcp.Description("Definition format: html (default), markdown or plain")),
			mcp.WithArray("aliases", mcp.WithStringItems(), mcp.Description("Keyword aliases that also find this entry")),
			mcp.WithBoolean("pending", mcp.Description("Store unapproved; pending entries are not searchable")),
		),
		h.addEntry,
	)

	s.AddTool(
		mcp.NewTool("glossd_import",
			mcp.WithDescription("Import collections from a YAML or JSON file or directory"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Filesystem path to import from")),
			mcp.WithString("collection", mcp.Description("Target collection for files with top-level entries")),
			mcp.WithNumber("course", mcp.Description("Owner scope for collections that don't name one")),
			mcp.WithBoolean("dry_run", mcp.Description("Count what would be imported without writing")),
		),
		h.importFiles,
	)

	s.AddTool(
		mcp.NewTool("glossd_export",
			mcp.WithDescription("Export collections in the glossd_import file format. Without a path the YAML is returned directly."),
			mcp.WithString("path", mcp.Description("File to write (.yaml, .yml or .json); omit to return YAML")),
			mcp.WithNumber("collection", mcp.Description("Only this collection id")),
			mcp.WithNumber("course", mcp.Description("Only collections of this owner scope (course)")),
			mcp.WithBoolean("force", mcp.Description("Overwrite an existing file")),
		),
		h.exportFiles,
	)

	s.AddTool(
		mcp.NewTool("glossd_stats",
			mcp.WithDescription("Show database location, whole-word strategy and row counts"),
		),
		h.stats,
	)

	s.AddTool(
		mcp.NewTool("glossd_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (e.g. search.per_page, search.whole_word) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("glossd_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (e.g. search.per_page, search.whole_word)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("glossd_guide",
			mcp.WithDescription("Get help/guide content for glossd"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'search', 'import') or empty for index")),
		),
		h.getGuide,
	)
}
