// tools_util.go extracts typed parameters from MCP arguments.
//
// Extraction is permissive: a missing or mistyped optional parameter yields
// the default rather than an error, since LLMs often omit optional
// arguments or send numbers as strings.

package mcp

import (
	"strconv"

	"github.com/jpl-au/glossd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString returns a string parameter or def.
func getString(req mcp.CallToolRequest, name, def string) string {
	return req.GetString(name, def)
}

// getBool returns a boolean parameter or def. The strings "true" and
// "false" are accepted too.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	return req.GetBool(name, def)
}

// getInt returns an integer parameter or def.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	return req.GetInt(name, def)
}

// getID returns a non-negative id parameter, or 0 when absent or invalid.
// JSON numbers arrive as float64, so ids beyond 2^53 are taken from strings.
func getID(req mcp.CallToolRequest, name string) int64 {
	switch v := req.GetArguments()[name].(type) {
	case int:
		if v > 0 {
			return int64(v)
		}
	case int64:
		if v > 0 {
			return v
		}
	case float64:
		if v > 0 {
			return int64(v)
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// getStrings returns a string array parameter, skipping non-strings.
func getStrings(req mcp.CallToolRequest, name string) []string {
	return req.GetStringSlice(name, nil)
}

// jsonResult serialises v as indented JSON in a text result. Marshalling
// failures become error results so every failure reaches the LLM the same way.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
