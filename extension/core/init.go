// init.go implements the "glossd init" command.
//
// Init creates the database only. Config is managed separately with
// "glossd config", the way git separates init from config. --local keeps
// the database out of version control.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new glossary database",
		Long: `Creates a .glossd/glossd.db database in the current directory.

Use --db to create additional databases:
  glossd init --db biology    # creates .glossd/glossd-biology.db

Use --dir to create in a different directory:
  glossd init --dir /path/to/project    # creates /path/to/project/.glossd/glossd.db

Use --local to exclude from git:
  glossd init --db drafts --local    # creates glossd-drafts.db, not committed

PostgreSQL databases are created by their administrator; set database.driver
and database.dsn instead. The schema is applied on first use.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .gitignore, which means nothing for a
	// database created elsewhere.
	if local && dir != "" {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	err := glossary.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := filepath.Join(dir, repo.Dir, repo.DBFileName(db))
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"database": loc, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised glossary in %s\n", loc)
	return nil
}
