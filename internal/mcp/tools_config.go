// tools_config.go implements MCP tools for configuration management.
// A successful set reopens the glossary so page size, whole-word strategy
// and alias matching change without a server restart.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/glossd/internal/config"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles glossd_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:glossd_config_get", "get").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:glossd_config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:glossd_config_get", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}

// configSet handles glossd_config_set tool calls.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	logSet := func(err error) {
		log.Event("mcp:glossd_config_set", "set").Author("mcp").Detail("key", key).Detail("value", value).Write(err)
	}

	cfg, err := config.Load()
	if err != nil {
		logSet(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := cfg.Set(key, value); err != nil {
		logSet(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	err = cfg.Save()
	logSet(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if h.svc != nil {
		if err := h.reopen(); err != nil {
			log.Event("mcp:glossd_config_set", "reload").Author("mcp").Write(err)
			return mcp.NewToolResultText(fmt.Sprintf("%s = %s (warning: reload failed, restart server to apply: %v)", key, value, err)), nil
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}
