// db.go implements the "glossd db" command for database management.
//
// Listing and local/shared toggling only touch .gitignore, so db is a
// NoStoreCommand and works on databases that are locked or damaged.
// --stats opens the selected database to report its contents.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/format"
	"github.com/jpl-au/glossd/internal/glossary"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/repo"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage databases",
		Long: `List databases, change their local/shared status or show statistics.

  glossd db                     # list all databases
  glossd db --local             # mark default database as local
  glossd db drafts --local      # mark drafts database as local
  glossd db drafts --share      # mark as shared
  glossd db --stats             # counts and whole-word strategy
  glossd db --dir /path         # list databases in external directory

Local databases are not committed. Shared databases are.
If no name is given with --local or --share, operates on the default database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark database as shared")
	c.Flags().Bool(extension.FlagStats, false, "Show database statistics")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare, extension.FlagStats)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)
	stats, _ := c.Flags().GetBool(extension.FlagStats)

	// repo functions expect the .glossd directory, not the project root.
	dir := cmd.Dir()
	glossdDir := ""
	if dir != "" {
		glossdDir = filepath.Join(dir, repo.Dir)
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	switch {
	case stats:
		return showStats(c, name)

	case len(args) == 0 && !local && !share:
		err := listDBs(glossdDir)
		log.Event("core:db", "list").Author(cmd.Author()).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil

	case local:
		err := repo.IgnoreDB(name, glossdDir)
		log.Event("core:db", "ignore").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db ignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as local\n", repo.DBFileName(name))
		return nil

	case share:
		err := repo.UnignoreDB(name, glossdDir)
		log.Event("core:db", "unignore").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db unignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as shared\n", repo.DBFileName(name))
		return nil
	}

	ignored, err := repo.IsIgnored(name, glossdDir)
	log.Event("core:db", "status").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
	}
	status := "shared"
	if ignored {
		status = "local"
	}
	fmt.Fprintf(cmd.Out(), "%s: %s\n", repo.DBFileName(name), status)
	return nil
}

// listDBs displays all databases in the target directory with their status.
func listDBs(dir string) error {
	dbs, err := repo.ListDBs(dir)
	if err != nil {
		return err
	}
	if cmd.JSON() {
		if dbs == nil {
			dbs = []repo.DBInfo{}
		}
		return cmd.PrintJSON(dbs)
	}

	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
		return nil
	}
	for _, db := range dbs {
		status := "shared"
		if db.Local {
			status = "local"
		}
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, status)
	}
	return nil
}

// showStats opens the named database (or the one selected by the global
// flags) and prints its counts and search configuration.
func showStats(c *cobra.Command, name string) error {
	opts := cmd.Options()
	if name != "" {
		opts.DB = name
	}
	svc, err := glossary.New(opts)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open glossary: %w", err))
	}
	defer svc.Close()

	st, err := svc.Stats(c.Context())
	log.Event("core:db", "stats").Author(cmd.Author()).Detail("db", name).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db stats: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"location": svc.Location(),
			"driver":   svc.Dialect(),
			"strategy": svc.Strategy(),
			"per_page": svc.PerPage(),
			"counts":   st,
		})
	}
	return format.Stats(cmd.Out(), svc.Location(), svc.Dialect(), string(svc.Strategy()), st)
}
