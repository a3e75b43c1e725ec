// guide.go implements the "glossd guide" command. Guides are embedded in the
// binary by the guide package, so they are available before init.

package core

import (
	"fmt"
	"strings"

	"github.com/jpl-au/glossd/cmd"
	"github.com/jpl-au/glossd/guide"
	"github.com/jpl-au/glossd/internal/log"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the glossd usage guide",
		Long: `Outputs the glossd guide for humans and LLMs.

  glossd guide           # main guide
  glossd guide search    # matching rules, scopes and paging
  glossd guide import    # glossary file format`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			log.Event("core:guide", "read").Author(cmd.Author()).Detail("topic", name).Write(err)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}
			printMarkdown(content)
			return nil
		},
	}
}
