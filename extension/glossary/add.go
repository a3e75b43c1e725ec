// add.go implements "glossd add collection" and "glossd add entry".
//
// A definition can come from the argument or, when omitted, from stdin so
// long definitions can be piped from a file.

package glossary

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/extension"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/jpl-au/glossd/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add",
		Short: "Add a collection or an entry",
	}
	c.AddCommand(e.newAddCollectionCmd(), e.newAddEntryCmd())
	return c
}

func (e *Extension) newAddCollectionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "collection <name>",
		Short: "Create a collection",
		Long: `Create a collection, optionally owned by a course.

  glossd add collection Biology
  glossd add collection "Cell Biology" --course 12`,
		Args: cobra.ExactArgs(1),
		RunE: e.runAddCollection,
	}
	c.Flags().Int64(extension.FlagCourse, 0, "Course that owns the collection")
	return c
}

func (e *Extension) runAddCollection(c *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	course, _ := c.Flags().GetInt64(extension.FlagCourse)
	if name == "" {
		return cmd.PrintJSONError(fmt.Errorf("collection name is required"))
	}

	id, err := e.svc.AddCollection(c.Context(), course, name)

	log.Event("glossary:add", "collection").
		Author(cmd.Author()).
		Collection(id).
		Detail("name", name).
		Detail("course", course).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add collection %q: %w", name, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"id": id, "name": name, "owner_scope_id": course})
	}
	fmt.Fprintf(cmd.Out(), "Added collection %d (%s)\n", id, name)
	return nil
}

func (e *Extension) newAddEntryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "entry <collection-id> <term> [definition]",
		Short: "Add an entry to a collection",
		Long: `Add a term and its definition to a collection.

  glossd add entry 4 Osmosis "Movement of water across a membrane."
  glossd add entry 4 Osmosis --alias diffusion < osmosis.html
  glossd add entry 4 Mitosis "Cell *division*." --format markdown
  glossd add entry 4 Draft "Not ready." --pending

Without a definition argument the definition is read from stdin.
Pending entries are stored but never appear in search results.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: e.runAddEntry,
	}
	c.Flags().StringArray(extension.FlagAlias, nil, "Keyword alias (repeatable)")
	c.Flags().StringP(extension.FlagFormat, "f", store.FormatHTML, "Definition format: html, markdown or plain")
	c.Flags().Bool(extension.FlagPending, false, "Store the entry unapproved")
	return c
}

func (e *Extension) runAddEntry(c *cobra.Command, args []string) error {
	coll, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || coll <= 0 {
		return cmd.PrintJSONError(fmt.Errorf("invalid collection id %q", args[0]))
	}
	term := strings.TrimSpace(args[1])
	if term == "" {
		return cmd.PrintJSONError(fmt.Errorf("term is required"))
	}

	var def string
	if len(args) == 3 {
		def = args[2]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read stdin: %w", err))
		}
		def = string(data)
	}
	def = strings.TrimSpace(def)
	if def == "" {
		return cmd.PrintJSONError(fmt.Errorf("definition is required"))
	}

	aliases, _ := c.Flags().GetStringArray(extension.FlagAlias)
	f, _ := c.Flags().GetString(extension.FlagFormat)
	pending, _ := c.Flags().GetBool(extension.FlagPending)

	entry := store.Entry{
		CollectionID: coll,
		Term:         term,
		Definition:   def,
		Format:       store.NormaliseFormat(f),
		Approved:     !pending,
	}
	id, err := e.svc.AddEntry(c.Context(), entry, aliases)

	log.Event("glossary:add", "entry").
		Author(cmd.Author()).
		Collection(coll).
		EntryID(id).
		Detail("term", term).
		Detail("aliases", len(aliases)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("add entry %q: %w", term, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"id": id, "collection_id": coll, "term": term})
	}
	fmt.Fprintf(cmd.Out(), "Added entry %d (%s)\n", id, term)
	return nil
}
