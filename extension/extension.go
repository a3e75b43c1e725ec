// Package extension provides the plugin architecture for glossd. Extensions
// group related commands and MCP tools and register at init time, so a
// feature can be added without touching the root command or the MCP server.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for glossd extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context once the glossary is
// open.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require an open glossary. Commands returned by NoStoreCommands()
// do not trigger store initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a database exists
// 2. Commands that manage their own service lifecycle (serve, web)
// 3. Utility commands that never touch the database (version)
type Storeless interface {
	NoStoreCommands() []string
}
