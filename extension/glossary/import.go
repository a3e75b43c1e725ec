// import.go implements the "glossd import" command.

package glossary

import (
	"fmt"
	"io"

	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/importer"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <path>",
		Short: "Import glossary files",
		Long: `Import glossary entries from a YAML or JSON file, or every
such file under a directory.

  glossd import biology.yaml                    # collections named in the file
  glossd import terms.json --collection Biology   # top-level entries go to Biology
  glossd import ./glossaries --course 12        # new collections belong to course 12
  glossd import biology.yaml --dry-run          # parse and count only

The whole import runs in one transaction: a bad file leaves the glossary
unchanged. See 'glossd guide import' for the file format.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().String(extension.FlagCollection, "", "Collection for entries that don't name one")
	c.Flags().Int64(extension.FlagCourse, 0, "Course id for new collections")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Parse and count without writing")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	src := args[0]
	coll, _ := c.Flags().GetString(extension.FlagCollection)
	course, _ := c.Flags().GetInt64(extension.FlagCourse)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	opts := importer.Options{
		Owner:      course,
		Collection: coll,
		DryRun:     dryRun,
	}

	// Progress lines would corrupt JSON output.
	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := e.svc.Import(c.Context(), w, src, opts)

	log.Event("glossary:import", "import").
		Author(cmd.Author()).
		Count(int64(result.Entries)).
		Detail("source", src).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}
	fmt.Fprintf(cmd.Out(), "%s %d entries (%d aliases) into %d collections (%d new) from %d files\n",
		verb, result.Entries, result.Aliases, result.Collections, result.Created, len(result.Files))
	return nil
}
