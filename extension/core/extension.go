// Package core provides the core extension for glossd.
// It registers commands: init, config, serve, web, guide, llm, db, version.
package core

import (
	"github.com/jpl-au/glossd/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Commands returns the repository, server and help commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newWebCmd(),
		newGuideCmd(),
		newLlmCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil; the glossary tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve and web: long-running servers open the glossary themselves.
// db: manages gitignore entries, opening a database only for --stats.
// version: displays build info.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "web", "db", "version"}
}
