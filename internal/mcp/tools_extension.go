// tools_extension.go registers the MCP tools contributed by extensions.

package mcp

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerExtensionTools adds every registered extension's tools. Handlers
// get a fresh Context per call because the service is replaced by
// glossd_init and glossd_config_set.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			slog.Debug("registering extension tool", "extension", ext.Name(), "tool", t.Tool.Name)
			s.AddTool(t.Tool, h.wrap(t.Handler))
		}
	}
}

func (h *handlers) wrap(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return fn(ctx, h.extContext(), req)
	}
}

// extContext snapshots the current service. A config that fails to load is
// passed as nil rather than failing tools that never read it.
func (h *handlers) extContext() extension.Context {
	var db *sql.DB
	if h.svc != nil {
		db = h.svc.DB()
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("loading config for extension tool", "error", err)
		cfg = nil
	}
	return extension.NewContext(h.svc, db, cfg)
}
