// mcp.go defines types for MCP tool registration by extensions.
//
// Not all extensions need MCP tools; the core glossary tools live in
// internal/mcp, which also registers every extension's tools on startup.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests. extCtx gives access to the
// glossary service and configuration.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
