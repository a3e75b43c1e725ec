// show.go implements the "glossd show" command.

package glossary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show one entry",
		Long: `Show an entry with its definition, aliases and approval state.
Unapproved entries are shown too; only search hides them.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runShow,
	}
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return cmd.PrintJSONError(fmt.Errorf("invalid entry id %q", args[0]))
	}

	entry, err := e.svc.Entry(c.Context(), id)

	log.Event("glossary:show", "read").Author(cmd.Author()).EntryID(id).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("show %d: %w", id, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(entry)
	}
	fmt.Fprintf(cmd.Out(), "%s\n", entry.Term)
	fmt.Fprintf(cmd.Out(), "  id:         %d\n", entry.ID)
	fmt.Fprintf(cmd.Out(), "  collection: %d\n", entry.CollectionID)
	fmt.Fprintf(cmd.Out(), "  format:     %s\n", entry.Format)
	fmt.Fprintf(cmd.Out(), "  approved:   %t\n", entry.Approved)
	if len(entry.Aliases) > 0 {
		fmt.Fprintf(cmd.Out(), "  aliases:    %s\n", strings.Join(entry.Aliases, ", "))
	}
	fmt.Fprintf(cmd.Out(), "  created:    %s\n\n", entry.CreatedAt)
	fmt.Fprintln(cmd.Out(), entry.Definition)
	return nil
}
