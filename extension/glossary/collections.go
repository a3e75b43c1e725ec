// collections.go implements the "glossd collections" command.

package glossary

import (
	"fmt"

	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/format"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newCollectionsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"ls"},
		Short:   "List glossary collections",
		Long: `List collections with their course and approved entry count.

  glossd collections             # every collection
  glossd collections --course 5  # collections belonging to course 5`,
		Args: cobra.NoArgs,
		RunE: e.runCollections,
	}
	c.Flags().Int64(extension.FlagCourse, 0, "Only list collections of this course")
	return c
}

func (e *Extension) runCollections(c *cobra.Command, _ []string) error {
	course, _ := c.Flags().GetInt64(extension.FlagCourse)

	colls, err := e.svc.Collections(c.Context(), course)

	log.Event("glossary:collections", "list").
		Author(cmd.Author()).
		Count(int64(len(colls))).
		Detail("course", course).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list collections: %w", err))
	}

	if cmd.JSON() {
		if colls == nil {
			colls = []store.Collection{}
		}
		return cmd.PrintJSON(colls)
	}
	if len(colls) == 0 {
		fmt.Fprintln(cmd.Out(), "No collections")
		return nil
	}
	return format.Collections(cmd.Out(), colls)
}
