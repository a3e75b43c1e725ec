// export.go implements the "glossd export" command.

package glossary

import (
	"fmt"
	"io"

	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/exporter"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <file|->",
		Short: "Export collections to a glossary file",
		Long: `Write collections out in the same format 'glossd import' reads.

  glossd export glossary.yaml               # every collection
  glossd export biology.json -c 4           # one collection, as JSON
  glossd export course12.yaml --course 12   # collections of course 12
  glossd export - | less                    # YAML to stdout

Unapproved entries are exported with approved: false so a re-import
restores them unchanged. Existing files are kept unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runExport,
	}
	c.Flags().Int64P(extension.FlagCollection, "c", 0, "Only export this collection id")
	c.Flags().Int64(extension.FlagCourse, 0, "Only export collections of this course")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := args[0]
	coll, _ := c.Flags().GetInt64(extension.FlagCollection)
	course, _ := c.Flags().GetInt64(extension.FlagCourse)

	opts := exporter.Options{
		Owner:        course,
		CollectionID: coll,
		Force:        cmd.Force(),
	}

	var w io.Writer = cmd.Out()
	if cmd.JSON() && dst != exporter.Stdout {
		w = io.Discard
	}

	result, err := e.svc.Export(c.Context(), w, dst, opts)

	log.Event("glossary:export", "export").
		Author(cmd.Author()).
		Collection(coll).
		Count(int64(result.Entries)).
		Detail("destination", dst).
		Detail("course", course).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export %q: %w", dst, err))
	}

	if dst == exporter.Stdout {
		return nil
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	fmt.Fprintf(cmd.Out(), "Exported %d entries (%d aliases) from %d collections to %s\n",
		result.Entries, result.Aliases, result.Collections, dst)
	return nil
}
