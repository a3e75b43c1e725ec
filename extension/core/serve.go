// serve.go implements the "glossd serve" command for MCP server operation.
//
// serve blocks handling MCP requests over stdio and owns its service
// lifecycle, so it is a NoStoreCommand.

package core

import (
	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --db to serve a specific database:
  glossd serve --db biology    # serve glossd-biology.db`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(cmd.Options())
		},
	}
}
