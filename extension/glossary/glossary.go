// Package glossary provides the authoring commands: loading and writing
// glossary files, listing collections, adding collections and entries, and
// showing one entry. Registers commands: import, export, collections, add,
// show.
package glossary

import (
	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/config"
	"github.com/jpl-au/glossd/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the glossary extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "glossary".
func (e *Extension) Name() string { return "glossary" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns import, export, collections, add and show.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newImportCmd(),
		e.newExportCmd(),
		e.newCollectionsCmd(),
		e.newAddCmd(),
		e.newShowCmd(),
	}
}

// MCPTools returns nil; the authoring tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
