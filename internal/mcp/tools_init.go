// tools_init.go implements the MCP tool for initialising a new glossary.
// It works without an existing database; other tools require one.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initStore handles glossd_init tool calls.
func (h *handlers) initStore(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("glossary already initialised"), nil
	}

	local := getBool(req, "local", false)

	err := glossary.Init(false, h.opts.DB, local, "")

	log.Event("mcp:glossd_init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.reopen(); err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open glossary: " + err.Error()), nil
	}

	slog.Info("glossary initialised", "local", local)

	if local {
		return mcp.NewToolResultText("glossary initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("glossary initialised"), nil
}
